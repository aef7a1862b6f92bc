// Package excludecmd implements the exclusion list management command.
package excludecmd

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/archmaint/archmaint/pkg/exclude"
	"github.com/archmaint/archmaint/pkg/match"
	"github.com/archmaint/archmaint/pkg/pacman"
	"github.com/archmaint/archmaint/pkg/system"
)

// NewCommand creates the exclude command with its add/remove/list
// subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exclude",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "maintenance",
	}

	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newListCmd())
	return cmd
}

func newAddCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "add <name>...",
		Short: MsgAddShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := exclude.Load(exclude.DefaultPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			// Warn about names the repositories do not know; a typo in an
			// exclusion silently ignores nothing.
			known, nameErr := pacman.AllNames(cmd.Context(), system.NewRunner())

			for _, name := range args {
				if !list.Add(name, reason) {
					fmt.Fprintf(out, "%s is already excluded\n", name)
					continue
				}
				fmt.Fprintf(out, "Excluded %s\n", name)

				if nameErr == nil && !contains(known, name) {
					warnUnknown(out, name, known)
				}
			}
			return list.Save()
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why this package is excluded")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>...",
		Short: MsgRemoveShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := exclude.Load(exclude.DefaultPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			for _, name := range args {
				if list.Remove(name) {
					fmt.Fprintf(out, "Removed %s\n", name)
				} else {
					fmt.Fprintf(out, "%s was not excluded\n", name)
				}
			}
			return list.Save()
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := exclude.Load(exclude.DefaultPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			entries := list.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No packages excluded.")
				return nil
			}
			for _, e := range entries {
				line := e.Name
				if e.Reason != "" {
					line += "  # " + e.Reason
				}
				if e.Added != "" {
					line += " (added " + e.Added + ")"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func warnUnknown(out io.Writer, name string, known []string) {
	pterm.Warning.Printfln("%s is not in the sync databases", name)
	if ranked := match.Rank(name, known, match.DefaultLimit); len(ranked) > 0 {
		fmt.Fprintln(out, "Did you mean:")
		for _, m := range ranked {
			fmt.Fprintf(out, "  %s\n", m.Name)
		}
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
