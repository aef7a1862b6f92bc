package commands

// Message constants
const (
	MsgRootShort = "An interactive maintenance assistant for Arch-family systems"
	MsgRootLong  = `archmaint sequences the chores of keeping an Arch-family system healthy:
distribution news review, snapper snapshots, repository/AUR/flatpak updates,
orphan and cache cleanup, pacnew/pacsave resolution and SMART disk checks.

Every mutating step asks first (see --yes and --dry-run) and the run ends
with a per-step report. Exit code 0 means all good, 64 means the run
completed but left warnings behind (failing disk, unresolved config
conflicts), anything else is a hard failure.`

	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(archmaint completion bash)
  # To load completions for each session, execute once:
  $ archmaint completion bash > /etc/bash_completion.d/archmaint

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ archmaint completion zsh > "${fpath[1]}/_archmaint"

Fish:
  $ archmaint completion fish | source
  # To load completions for each session, execute once:
  $ archmaint completion fish > ~/.config/fish/completions/archmaint.fish

PowerShell:
  PS> archmaint completion powershell | Out-String | Invoke-Expression
`

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview what would happen without changing the system"
	MsgFlagYes     = "Assume yes for every prompt"
	MsgFlagNoColor = "Disable colored output"
)
