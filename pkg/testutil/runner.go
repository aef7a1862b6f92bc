// Package testutil provides shared test doubles for archmaint packages.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/archmaint/archmaint/pkg/errors"
)

// Call records one command invocation against the FakeRunner.
type Call struct {
	Name string
	Args []string
	Sudo bool
}

// Response is a canned response for a command.
type Response struct {
	Output string
	Err    error
}

// FakeRunner is a system.Runner double with canned responses keyed by the
// full command line ("name arg1 arg2"). Unknown command lines succeed with
// empty output, so tests only declare what they care about.
type FakeRunner struct {
	mu        sync.Mutex
	Responses map[string]Response
	Missing   map[string]bool // tools LookPath should report as absent
	Calls     []Call
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Responses: make(map[string]Response),
		Missing:   make(map[string]bool),
	}
}

// Respond registers a canned response for the given command line.
func (f *FakeRunner) Respond(cmdline, output string, err error) {
	f.Responses[cmdline] = Response{Output: output, Err: err}
}

// FailWith registers a failing response carrying the given exit code.
func (f *FakeRunner) FailWith(cmdline string, exitCode int, stderr string) {
	err := errors.Newf(errors.ErrCommandFailed, "%s failed", strings.Fields(cmdline)[0]).
		WithDetail("exitCode", exitCode).
		WithDetail("stderr", stderr)
	f.Responses[cmdline] = Response{Err: err}
}

func (f *FakeRunner) record(name string, args []string, sudo bool) Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Name: name, Args: args, Sudo: sudo})

	key := name
	if len(args) > 0 {
		key += " " + strings.Join(args, " ")
	}
	return f.Responses[key]
}

// Run implements system.Runner.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) error {
	return f.record(name, args, false).Err
}

// Output implements system.Runner.
func (f *FakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	resp := f.record(name, args, false)
	return resp.Output, resp.Err
}

// Sudo implements system.Runner.
func (f *FakeRunner) Sudo(_ context.Context, name string, args ...string) error {
	return f.record(name, args, true).Err
}

// SudoOutput implements system.Runner.
func (f *FakeRunner) SudoOutput(_ context.Context, name string, args ...string) (string, error) {
	resp := f.record(name, args, true)
	return resp.Output, resp.Err
}

// LookPath implements system.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", errors.Newf(errors.ErrToolMissing, "%s not found on PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// CommandLines returns every recorded invocation as a command line string,
// with sudo invocations prefixed.
func (f *FakeRunner) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		line := c.Name
		if len(c.Args) > 0 {
			line += " " + strings.Join(c.Args, " ")
		}
		if c.Sudo {
			line = "sudo " + line
		}
		lines = append(lines, line)
	}
	return lines
}
