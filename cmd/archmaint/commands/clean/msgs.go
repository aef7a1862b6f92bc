package clean

// Message constants
const (
	MsgShort = "Remove orphans, trim the cache, drop unused flatpak runtimes"
	MsgLong  = `Clean reclaims disk space in three ways:

  - removes packages installed as dependencies that nothing requires
    anymore (pacman -Rns), skipping excluded names
  - trims the package cache to a configurable number of versions per
    package (paccache -rk), optionally dropping caches of uninstalled
    packages entirely
  - uninstalls flatpak runtimes and extensions nothing depends on

By default all three run; the flags narrow the command to a subset.`

	MsgExample = `  # Everything
  archmaint clean

  # Orphans only
  archmaint clean --orphans

  # Keep 5 cached versions instead of the configured count
  archmaint clean --cache --keep 5`
)
