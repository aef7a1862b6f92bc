package health

// Message constants
const (
	MsgShort = "Check SMART disk health"
	MsgLong  = `Health runs smartctl's overall-health self-assessment for every
SMART-capable disk (discovered via smartctl --scan) or for the devices
given as arguments.

A failing disk does not abort the command; it is reported and the process
exits with the warnings code (64) so scripts can react.`

	MsgExample = `  # Check every disk
  archmaint health

  # Check specific devices
  archmaint health /dev/sda /dev/nvme0`
)
