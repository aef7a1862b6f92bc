// Package commands assembles the archmaint command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/archmaint/archmaint/cmd/archmaint/commands/clean"
	"github.com/archmaint/archmaint/cmd/archmaint/commands/excludecmd"
	"github.com/archmaint/archmaint/cmd/archmaint/commands/genconfig"
	"github.com/archmaint/archmaint/cmd/archmaint/commands/health"
	"github.com/archmaint/archmaint/cmd/archmaint/commands/matchcmd"
	"github.com/archmaint/archmaint/cmd/archmaint/commands/newscmd"
	"github.com/archmaint/archmaint/cmd/archmaint/commands/pacfilescmd"
	"github.com/archmaint/archmaint/cmd/archmaint/commands/run"
	"github.com/archmaint/archmaint/cmd/archmaint/commands/snapshotcmd"
	"github.com/archmaint/archmaint/cmd/archmaint/commands/update"
	"github.com/archmaint/archmaint/internal/version"
	"github.com/archmaint/archmaint/pkg/logging"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		dryRun    bool
		yes       bool
		noColor   bool
	)

	rootCmd := &cobra.Command{
		Use:     "archmaint",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			if noColor {
				// NO_COLOR is honored by pterm, lipgloss and glamour alike.
				_ = os.Setenv("NO_COLOR", "1")
				pterm.DisableColor()
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help, signal incorrect usage.
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, MsgFlagNoColor)

	// Command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "maintenance",
		Title: "MAINTENANCE:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(run.NewCommand())
	rootCmd.AddCommand(update.NewCommand())
	rootCmd.AddCommand(clean.NewCommand())
	rootCmd.AddCommand(health.NewCommand())
	rootCmd.AddCommand(snapshotcmd.NewCommand())
	rootCmd.AddCommand(pacfilescmd.NewCommand())
	rootCmd.AddCommand(excludecmd.NewCommand())
	rootCmd.AddCommand(matchcmd.NewCommand())
	rootCmd.AddCommand(newscmd.NewCommand())
	rootCmd.AddCommand(genconfig.NewCommand())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "archmaint version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate bash completion")
				}
			case "zsh":
				if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate zsh completion")
				}
			case "fish":
				if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
					log.Error().Err(err).Msg("Failed to generate fish completion")
				}
			case "powershell":
				if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate powershell completion")
				}
			}
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "ARCHMAINT",
				Section: "1",
			}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write the man pages to")

	return cmd
}
