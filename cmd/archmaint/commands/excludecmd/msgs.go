package excludecmd

// Message constants
const (
	MsgShort = "Manage the persistent exclusion list"
	MsgLong  = `Excluded packages are never upgraded (they become --ignore arguments for
pacman and the AUR helper) and are never offered for removal by the cleanup
steps.

The list lives in $XDG_CONFIG_HOME/archmaint/exclude.toml and can also be
edited by hand.`

	MsgExample = `  archmaint exclude add linux-lts --reason "kernel pinned for bisect"
  archmaint exclude remove linux-lts
  archmaint exclude list`

	MsgAddShort    = "Add packages to the exclusion list"
	MsgRemoveShort = "Remove packages from the exclusion list"
	MsgListShort   = "Show the exclusion list"
)
