// Package matchcmd exposes the fuzzy name matcher directly.
package matchcmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/archmaint/archmaint/pkg/flatpak"
	"github.com/archmaint/archmaint/pkg/match"
	"github.com/archmaint/archmaint/pkg/pacman"
	"github.com/archmaint/archmaint/pkg/system"
)

// NewCommand creates the match command.
func NewCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "match [identifier]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "maintenance",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := system.NewRunner()
			names, err := pacman.AllNames(cmd.Context(), runner)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				printMatches(out, args[0], match.Rank(args[0], names, limit))
				return nil
			}
			return matchInstalled(cmd.Context(), out, runner, names)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", match.DefaultLimit, "Maximum number of matches to show")
	return cmd
}

// matchInstalled maps every foreign (AUR) package and flatpak application
// to its best repository candidate.
func matchInstalled(ctx context.Context, out io.Writer, runner system.Runner, names []string) error {
	foreign, err := pacman.Foreign(ctx, runner)
	if err != nil {
		return err
	}
	for _, pkg := range foreign {
		printBest(out, pkg.Name, names)
	}

	if flatpak.Available(runner) {
		apps, err := flatpak.Installed(ctx, runner)
		if err != nil {
			return err
		}
		for _, app := range apps {
			printBest(out, app.ID, names)
		}
	}
	return nil
}

func printBest(out io.Writer, id string, names []string) {
	if best, ok := match.Best(id, names); ok {
		fmt.Fprintf(out, "%-40s -> %s (%s)\n", id, best.Name, best.Kind)
	} else {
		fmt.Fprintf(out, "%-40s -> no repository match\n", id)
	}
}

func printMatches(out io.Writer, id string, ranked []match.Match) {
	if len(ranked) == 0 {
		fmt.Fprintf(out, "No repository package matches %q (normalized: %q)\n",
			id, match.Normalize(id))
		return
	}
	for _, m := range ranked {
		switch m.Kind {
		case match.Fuzzy:
			fmt.Fprintf(out, "%-30s %s (distance %d)\n", m.Name, m.Kind, m.Distance)
		default:
			fmt.Fprintf(out, "%-30s %s\n", m.Name, m.Kind)
		}
	}
}
