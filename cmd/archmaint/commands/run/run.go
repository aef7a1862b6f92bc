// Package run implements the full maintenance routine command.
package run

import (
	"github.com/spf13/cobra"

	"github.com/archmaint/archmaint/cmd/archmaint/commands/cmdutil"
	"github.com/archmaint/archmaint/pkg/maintain"
)

// NewCommand creates the run command.
func NewCommand() *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:     "run",
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

			maintain.Execute(cmd.Context(), s, maintain.Routine())
			return cmdutil.Finish(cmd, s, markdown)
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the final report as markdown")
	return cmd
}
