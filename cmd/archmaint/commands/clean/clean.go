// Package clean implements the orphan, cache and flatpak cleanup command.
package clean

import (
	"github.com/spf13/cobra"

	"github.com/archmaint/archmaint/cmd/archmaint/commands/cmdutil"
	"github.com/archmaint/archmaint/pkg/maintain"
)

// NewCommand creates the clean command.
func NewCommand() *cobra.Command {
	var (
		orphans       bool
		cache         bool
		flatpakUnused bool
		keep          int
	)

	cmd := &cobra.Command{
		Use:     "clean",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "maintenance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cmdutil.NewSession(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("keep") {
				s.Config.Clean.CacheKeep = keep
			}

			all := !orphans && !cache && !flatpakUnused
			var steps []maintain.Step
			if all || orphans {
				steps = append(steps, maintain.OrphanStep())
			}
			if all || cache {
				steps = append(steps, maintain.CacheStep())
			}
			if all || flatpakUnused {
				steps = append(steps, maintain.FlatpakUnusedStep())
			}

			maintain.Execute(cmd.Context(), s, steps)
			return cmdutil.Finish(cmd, s, false)
		},
	}

	cmd.Flags().BoolVar(&orphans, "orphans", false, "Remove orphaned packages only")
	cmd.Flags().BoolVar(&cache, "cache", false, "Trim the package cache only")
	cmd.Flags().BoolVar(&flatpakUnused, "flatpak-unused", false, "Remove unused flatpak runtimes only")
	cmd.Flags().IntVar(&keep, "keep", 0, "Cache versions to keep per package (overrides config)")
	return cmd
}
