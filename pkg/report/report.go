// Package report collects per-step results of a maintenance run and renders
// the final summary.
package report

import (
	"fmt"
	"time"
)

// Status is the outcome of a single maintenance step.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusWarn    Status = "warn"
	StatusFailed  Status = "failed"
)

// Result is one step's outcome.
type Result struct {
	Name     string
	Status   Status
	Detail   string
	Duration time.Duration
	// Items are per-step line items: updated packages, failing disks,
	// unresolved config conflicts.
	Items []string
}

// Exit codes follow the summary severity. 64 mirrors EX_SOFTWARE-adjacent
// "completed with warnings" conventions used by other setup tooling.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitWarnings = 64
)

// Summary aggregates step results over a run.
type Summary struct {
	Started time.Time
	Results []Result
}

// NewSummary starts an empty summary.
func NewSummary() *Summary {
	return &Summary{Started: time.Now()}
}

// Add appends a step result.
func (s *Summary) Add(r Result) {
	s.Results = append(s.Results, r)
}

// HasFailures reports whether any step failed outright.
func (s *Summary) HasFailures() bool {
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any step ended in a warning.
func (s *Summary) HasWarnings() bool {
	for _, r := range s.Results {
		if r.Status == StatusWarn {
			return true
		}
	}
	return false
}

// ExitCode maps the summary onto the process exit code.
func (s *Summary) ExitCode() int {
	switch {
	case s.HasFailures():
		return ExitFailure
	case s.HasWarnings():
		return ExitWarnings
	default:
		return ExitOK
	}
}

// Elapsed is the wall time since the run started.
func (s *Summary) Elapsed() time.Duration {
	return time.Since(s.Started)
}

// Counts returns how many steps ended in each status.
func (s *Summary) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, r := range s.Results {
		counts[r.Status]++
	}
	return counts
}

// OKResult is a convenience constructor for a successful step.
func OKResult(name, detail string, started time.Time) Result {
	return Result{Name: name, Status: StatusOK, Detail: detail, Duration: time.Since(started)}
}

// SkipResult marks a step that did not run and says why.
func SkipResult(name, reason string) Result {
	return Result{Name: name, Status: StatusSkipped, Detail: reason}
}

// FailResult marks a failed step with its error.
func FailResult(name string, err error, started time.Time) Result {
	return Result{
		Name:     name,
		Status:   StatusFailed,
		Detail:   fmt.Sprintf("%v", err),
		Duration: time.Since(started),
	}
}
