// Package snapshotcmd implements the manual snapshot command.
package snapshotcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmaint/archmaint/cmd/archmaint/commands/cmdutil"
	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/snapshot"
)

// NewCommand creates the snapshot command.
func NewCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:     "snapshot",
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
			out := cmd.OutOrStdout()

			if !snapshot.Available(s.Runner) {
				return errors.New(errors.ErrToolMissing, "snapper is not installed")
			}

			configs, err := snapshot.Configs(cmd.Context(), s.Runner)
			if err != nil {
				return err
			}
			if len(s.Config.Snapshot.Configs) > 0 {
				want := make(map[string]bool)
				for _, name := range s.Config.Snapshot.Configs {
					want[name] = true
				}
				var kept []snapshot.Config
				for _, c := range configs {
					if want[c.Name] {
						kept = append(kept, c)
					}
				}
				configs = kept
			}
			if len(configs) == 0 {
				fmt.Fprintln(out, "No snapper configurations found.")
				return nil
			}

			min := s.Config.Snapshot.MinFreePercent
			for _, c := range configs {
				ok, free, err := snapshot.FreeSpaceOK(c.Subvolume, min)
				if err != nil {
					return err
				}
				if !ok {
					question := fmt.Sprintf("Only %d%% free on %s (%d%% required). Snapshot %q anyway?",
						free, c.Subvolume, min, c.Name)
					if !s.Prompter.Confirm(question, false) {
						fmt.Fprintf(out, "Skipped %q (low free space)\n", c.Name)
						continue
					}
				}

				if s.DryRun {
					fmt.Fprintf(out, "Would create pre snapshot for %q\n", c.Name)
					continue
				}

				number, err := snapshot.Create(cmd.Context(), s.Runner, c.Name, snapshot.Pre, description, 0)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Created snapshot #%d for %q\n", number, c.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "archmaint manual", "Snapshot description")
	return cmd
}
