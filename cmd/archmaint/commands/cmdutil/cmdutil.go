// Package cmdutil wires shared dependencies for the archmaint subcommands:
// configuration, the command runner, the prompter and the exclusion list.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/archmaint/archmaint/pkg/config"
	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/exclude"
	"github.com/archmaint/archmaint/pkg/maintain"
	"github.com/archmaint/archmaint/pkg/prompt"
	"github.com/archmaint/archmaint/pkg/report"
	"github.com/archmaint/archmaint/pkg/system"
)

// exitCode is the process exit code for runs that complete with warnings.
// Hard failures surface as errors from RunE instead.
var exitCode = report.ExitOK

// ExitCode returns the exit code recorded for this invocation.
func ExitCode() int {
	return exitCode
}

// NewSession loads the configuration and exclusion list and builds a
// maintenance session honoring the global --dry-run and --yes flags.
func NewSession(cmd *cobra.Command) (*maintain.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	excluded, err := exclude.Load(exclude.DefaultPath())
	if err != nil {
		return nil, err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	s := maintain.NewSession(cfg, system.NewRunner(), prompt.New(yes), excluded)
	s.DryRun = dryRun
	s.Out = cmd.OutOrStdout()
	return s, nil
}

// Finish renders the summary and maps its outcome onto the process exit:
// failures become an error, warnings set the warnings exit code.
func Finish(cmd *cobra.Command, s *maintain.Session, markdown bool) error {
	out := cmd.OutOrStdout()
	if markdown {
		if err := report.RenderMarkdown(out, s.Summary); err != nil {
			report.RenderPlain(out, s.Summary)
		}
	} else {
		report.Render(out, s.Summary)
	}

	switch s.Summary.ExitCode() {
	case report.ExitFailure:
		return errors.New(errors.ErrCommandFailed, "maintenance finished with failures")
	case report.ExitWarnings:
		exitCode = report.ExitWarnings
	}
	return nil
}
