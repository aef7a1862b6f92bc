// Package pacfilescmd implements the pacnew/pacsave resolution command.
package pacfilescmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/archmaint/archmaint/cmd/archmaint/commands/cmdutil"
	"github.com/archmaint/archmaint/pkg/maintain"
	"github.com/archmaint/archmaint/pkg/pacfiles"
)

// NewCommand creates the pacfiles command.
func NewCommand() *cobra.Command {
	var (
		mergeTool string
		watch     bool
	)

	cmd := &cobra.Command{
		Use:     "pacfiles",
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
			if mergeTool != "" {
				s.Config.Pacfiles.MergeTool = mergeTool
			}

			if watch {
				return watchConflicts(cmd, s.Config.Pacfiles.Roots)
			}

			maintain.Execute(cmd.Context(), s, []maintain.Step{maintain.PacfilesStep()})
			return cmdutil.Finish(cmd, s, false)
		},
	}

	cmd.Flags().StringVar(&mergeTool, "merge-tool", "", "Merge tool to use (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Report new pacnew/pacsave files as they appear")
	return cmd
}

// watchConflicts blocks, printing conflicts until interrupted.
func watchConflicts(cmd *cobra.Command, roots []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := pacfiles.Watch(ctx, roots)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, MsgWatching)

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-watcher.Conflicts():
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "%s (%s of %s)\n", c.Path, c.Kind, c.Base)
		}
	}
}
