// Package system runs the external tools archmaint orchestrates. Every
// mutating maintenance operation in this codebase goes through a Runner so
// commands stay loggable, testable and dry-runnable.
package system

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/logging"
)

// Runner executes external commands.
type Runner interface {
	// Run streams the command's output to the terminal. Used for
	// interactive tools (pacman transactions, merge tools).
	Run(ctx context.Context, name string, args ...string) error
	// Output captures and returns combined stdout. Stderr is captured
	// separately and included in the error on failure.
	Output(ctx context.Context, name string, args ...string) (string, error)
	// Sudo behaves like Run but executes the command through sudo,
	// unless the process is already root.
	Sudo(ctx context.Context, name string, args ...string) error
	// SudoOutput behaves like Output but escalates through sudo,
	// unless the process is already root.
	SudoOutput(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports the resolved path of a tool, or an ErrToolMissing error.
	LookPath(name string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct {
	logger zerolog.Logger
}

// NewRunner creates an ExecRunner.
func NewRunner() *ExecRunner {
	return &ExecRunner{logger: logging.GetLogger("system")}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "%s failed", name).
			WithDetail("command", name).
			WithDetail("args", strings.Join(args, " ")).
			WithDetail("exitCode", exitCode(err))
	}
	return nil
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := stdout.String()
	if err != nil {
		return out, errors.Wrapf(err, errors.ErrCommandFailed, "%s failed", name).
			WithDetail("command", name).
			WithDetail("args", strings.Join(args, " ")).
			WithDetail("stderr", strings.TrimSpace(stderr.String())).
			WithDetail("exitCode", exitCode(err))
	}

	r.logger.Trace().Str("command", name).Int("bytes", stdout.Len()).Msg("Command output captured")
	return out, nil
}

// Sudo implements Runner.
func (r *ExecRunner) Sudo(ctx context.Context, name string, args ...string) error {
	if os.Geteuid() == 0 {
		return r.Run(ctx, name, args...)
	}
	return r.Run(ctx, "sudo", append([]string{name}, args...)...)
}

// SudoOutput implements Runner.
func (r *ExecRunner) SudoOutput(ctx context.Context, name string, args ...string) (string, error) {
	if os.Geteuid() == 0 {
		return r.Output(ctx, name, args...)
	}
	return r.Output(ctx, "sudo", append([]string{name}, args...)...)
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrToolMissing, "%s not found on PATH", name)
	}
	return path, nil
}

// Available reports whether a tool can be resolved through the runner.
func Available(r Runner, name string) bool {
	_, err := r.LookPath(name)
	return err == nil
}

// FirstAvailable returns the first tool from candidates found on PATH.
// An empty preferred value is skipped.
func FirstAvailable(r Runner, preferred string, candidates ...string) (string, error) {
	all := candidates
	if preferred != "" {
		all = append([]string{preferred}, candidates...)
	}
	for _, name := range all {
		if Available(r, name) {
			return name, nil
		}
	}
	return "", errors.Newf(errors.ErrToolMissing,
		"none of %s found on PATH", strings.Join(all, ", "))
}

// ExitCode extracts the process exit code from a command error,
// or -1 when the error carries none.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if details := errors.GetErrorDetails(err); details != nil {
		if code, ok := details["exitCode"].(int); ok {
			return code
		}
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
