package pacfilescmd

// Message constants
const (
	MsgShort = "Find and resolve pacnew/pacsave config conflicts"
	MsgLong  = `Pacfiles walks the configured roots (default /etc) for the .pacnew and
.pacsave files pacman leaves behind and offers to merge, skip or delete
each one. Merging opens the configured merge tool (meld, then vimdiff by
default) on the live file and the incoming one.

With --watch the command instead blocks and reports new conflicts as
pacman creates them, until interrupted.`

	MsgExample = `  # Resolve everything under /etc
  archmaint pacfiles

  # Use a specific merge tool
  archmaint pacfiles --merge-tool vimdiff

  # Watch for new conflicts during a manual upgrade
  archmaint pacfiles --watch`

	MsgWatching = "Watching for new pacnew/pacsave files (Ctrl-C to stop)..."
)
