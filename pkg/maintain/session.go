// Package maintain sequences the maintenance steps of a full run: news,
// snapshots, updates, cleanup, config conflicts and disk health, collecting
// a per-step result for the final report.
package maintain

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/archmaint/archmaint/pkg/config"
	"github.com/archmaint/archmaint/pkg/exclude"
	"github.com/archmaint/archmaint/pkg/logging"
	"github.com/archmaint/archmaint/pkg/pacfiles"
	"github.com/archmaint/archmaint/pkg/prompt"
	"github.com/archmaint/archmaint/pkg/report"
	"github.com/archmaint/archmaint/pkg/system"
)

// Session carries everything a step needs: resolved configuration, the
// command runner, the prompter and the exclusion list, plus state steps
// hand to each other (pre snapshot numbers, the conflict watcher).
type Session struct {
	Config   *config.Config
	Runner   system.Runner
	Prompter prompt.Prompter
	Excluded *exclude.List
	Summary  *report.Summary
	DryRun   bool
	Out      io.Writer

	aborted    bool
	preNumbers map[string]int
	watcher    *pacfiles.Watcher
}

// NewSession builds a session writing user-facing output to stdout.
func NewSession(cfg *config.Config, r system.Runner, p prompt.Prompter, excl *exclude.List) *Session {
	return &Session{
		Config:     cfg,
		Runner:     r,
		Prompter:   p,
		Excluded:   excl,
		Summary:    report.NewSummary(),
		Out:        os.Stdout,
		preNumbers: make(map[string]int),
	}
}

// Abort stops the run after the current step, without the continue prompt.
// Steps call it when the user declined to go on (news review, snapshot
// guard).
func (s *Session) Abort() {
	s.aborted = true
}

// Aborted reports whether a step requested the run to stop.
func (s *Session) Aborted() bool {
	return s.aborted
}

// Step is one unit of the maintenance routine. Run returns the step's
// result; it never panics the run, failures are results too.
type Step struct {
	Name string
	Run  func(ctx context.Context, s *Session) report.Result
}

// Execute runs steps in order. A failed step prompts whether to continue
// with the rest; an aborted session stops immediately.
func Execute(ctx context.Context, s *Session, steps []Step) *report.Summary {
	log := logging.GetLogger("maintain")

	for i, step := range steps {
		log.Info().Str("step", step.Name).Bool("dryRun", s.DryRun).Msg("Step starting")
		result := step.Run(ctx, s)
		s.Summary.Add(result)
		log.Info().Str("step", step.Name).Str("status", string(result.Status)).
			Str("detail", result.Detail).Msg("Step finished")

		if s.aborted {
			break
		}
		if result.Status == report.StatusFailed && i < len(steps)-1 {
			question := fmt.Sprintf("Step %q failed. Continue with the remaining steps?", step.Name)
			if !s.Prompter.Confirm(question, false) {
				break
			}
		}
	}

	// The watcher outlives the update step only until the conflict step
	// drains it; stop it here in case that step never ran.
	if s.watcher != nil {
		_ = s.watcher.Close()
		s.watcher = nil
	}
	return s.Summary
}

// dryRunDetail marks a skipped result as a dry-run preview.
func dryRunDetail(would string) string {
	return "dry run: " + would
}
