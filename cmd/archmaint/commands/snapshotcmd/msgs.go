package snapshotcmd

// Message constants
const (
	MsgShort = "Create snapper pre snapshots"
	MsgLong  = `Snapshot creates a snapper pre snapshot on each discovered configuration
(or only those listed under snapshot.configs). Every snapshot is guarded by
a free-space check; below the configured threshold the command asks before
proceeding.`

	MsgExample = `  # Snapshot every configuration
  archmaint snapshot

  # With a custom description
  archmaint snapshot -d "before nvidia driver change"`
)
