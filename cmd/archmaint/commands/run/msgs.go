package run

// Message constants
const (
	MsgShort = "Run the full maintenance routine"
	MsgLong  = `The run command performs every maintenance step in order:

  1. Show unread distribution news
  2. Take snapper pre snapshots (free space permitting)
  3. Update official repository packages
  4. Update AUR packages
  5. Update flatpak applications
  6. Remove orphaned packages
  7. Trim the package cache
  8. Remove unused flatpak runtimes
  9. Take the matching post snapshots
 10. Resolve pacnew/pacsave config conflicts
 11. Check SMART disk health

Each mutating step asks for confirmation. Steps for tools that are not
installed are skipped with a notice.`

	MsgExample = `  # Full interactive run
  archmaint run

  # Preview without touching the system
  archmaint run --dry-run

  # Unattended run, accept every prompt
  archmaint run --yes

  # Markdown report for pasting into notes
  archmaint run --markdown`
)
