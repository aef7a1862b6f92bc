// Package health implements the SMART disk check command.
package health

import (
	"github.com/spf13/cobra"

	"github.com/archmaint/archmaint/cmd/archmaint/commands/cmdutil"
	"github.com/archmaint/archmaint/pkg/maintain"
)

// NewCommand creates the health command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "health [devices...]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "maintenance",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cmdutil.NewSession(cmd)
			if err != nil {
				return err
			}

			// Invoking the command directly overrides the config switch.
			s.Config.Health.Enabled = true
			if len(args) > 0 {
				s.Config.Health.Devices = args
			}

			maintain.Execute(cmd.Context(), s, []maintain.Step{maintain.DiskHealthStep()})
			return cmdutil.Finish(cmd, s, false)
		},
	}
}
