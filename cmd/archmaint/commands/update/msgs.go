package update

// Message constants
const (
	MsgShort = "Update repository, AUR and flatpak packages"
	MsgLong  = `Update checks each package domain for pending updates, shows them, and
applies them after confirmation. Excluded packages (see 'archmaint exclude')
are passed to pacman and the AUR helper as --ignore.

Any pacnew/pacsave files the upgrade produces are offered for resolution
afterwards. By default all configured domains are updated; the --repo,
--aur and --flatpak flags narrow the run.`

	MsgExample = `  # Update everything that is configured
  archmaint update

  # Official repositories only
  archmaint update --repo

  # AUR and flatpak, skip the repositories
  archmaint update --aur --flatpak`
)
