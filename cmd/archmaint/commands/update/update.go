// Package update implements the package update command.
package update

import (
	"github.com/spf13/cobra"

	"github.com/archmaint/archmaint/cmd/archmaint/commands/cmdutil"
	"github.com/archmaint/archmaint/pkg/maintain"
)

// NewCommand creates the update command.
func NewCommand() *cobra.Command {
	var (
		repo    bool
		aur     bool
		flatpak bool
	)

	cmd := &cobra.Command{
		Use:     "update",
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

			// Selecting any domain explicitly narrows the run to the
			// selected ones; otherwise the configuration decides.
			if repo || aur || flatpak {
				s.Config.Update.Repo = repo
				s.Config.Update.AUR = aur
				s.Config.Update.Flatpak = flatpak
			}

			steps := []maintain.Step{
				maintain.RepoUpdateStep(),
				maintain.AURUpdateStep(),
				maintain.FlatpakUpdateStep(),
				maintain.PacfilesStep(),
			}
			maintain.Execute(cmd.Context(), s, steps)
			return cmdutil.Finish(cmd, s, false)
		},
	}

	cmd.Flags().BoolVar(&repo, "repo", false, "Update official repository packages only")
	cmd.Flags().BoolVar(&aur, "aur", false, "Update AUR packages only")
	cmd.Flags().BoolVar(&flatpak, "flatpak", false, "Update flatpak applications only")
	return cmd
}
