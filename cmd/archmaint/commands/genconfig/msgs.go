package genconfig

// Message constants
const (
	MsgShort = "Print the default configuration"
	MsgLong  = `Genconfig outputs the built-in defaults as commented TOML, the starting
point for /etc/archmaint/config.toml or the per-user config under
$XDG_CONFIG_HOME/archmaint.`

	MsgExample = `  # Inspect the defaults
  archmaint genconfig

  # Start a user config
  archmaint genconfig -w

  # Start a system-wide config
  archmaint genconfig | sudo tee /etc/archmaint/config.toml`
)
