package newscmd

// Message constants
const (
	MsgShort = "Show the latest distribution news"
	MsgLong  = `News fetches the Arch Linux news feed (or whatever news.url points at)
and renders the newest items in the terminal. Arch announces required
manual interventions there, which is why the full run shows unread items
before touching the system.`

	MsgExample = `  archmaint news
  archmaint news --limit 10
  archmaint news --browser`
)
