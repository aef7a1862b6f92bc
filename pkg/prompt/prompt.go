// Package prompt implements the interactive confirmation and selection
// flows. All prompts honor --yes and degrade to their defaults when stdin
// is not a terminal, so the tool stays usable from cron or a pipe.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/archmaint/archmaint/pkg/logging"
)

// maxAttempts bounds the retry loop on unparseable input.
const maxAttempts = 3

// Prompter asks the user questions.
type Prompter interface {
	// Confirm asks a yes/no question. The default answers when input is
	// empty, unavailable or repeatedly invalid.
	Confirm(question string, def bool) bool
	// Select asks the user to pick one of options; the first option is
	// the default.
	Select(question string, options []string) string
}

// Console is the terminal-backed Prompter. One reader is shared by every
// prompt so buffered-ahead input is not lost between consecutive questions.
type Console struct {
	autoYes     bool
	interactive bool
	usePterm    bool
	in          *bufio.Reader
	out         io.Writer
}

// New creates a Console wired to the process's stdin/stdout. With autoYes
// every confirmation is accepted and every selection takes its default.
func New(autoYes bool) *Console {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	return &Console{
		autoYes:     autoYes,
		interactive: interactive,
		usePterm:    interactive,
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
}

// NewForTest creates a Console reading from in, for prompt-flow tests.
func NewForTest(in io.Reader, out io.Writer) *Console {
	return &Console{interactive: true, in: bufio.NewReader(in), out: out}
}

// Confirm implements Prompter.
func (c *Console) Confirm(question string, def bool) bool {
	log := logging.GetLogger("prompt")

	if c.autoYes {
		log.Debug().Str("question", question).Msg("Auto-accepting prompt (--yes)")
		return true
	}
	if !c.interactive {
		log.Info().Str("question", question).Bool("default", def).
			Msg("stdin is not a terminal, using default answer")
		return def
	}

	if c.usePterm {
		result, err := pterm.DefaultInteractiveConfirm.
			WithDefaultValue(def).
			Show(question)
		if err != nil {
			return def
		}
		return result
	}

	return c.plainConfirm(question, def)
}

// Select implements Prompter.
func (c *Console) Select(question string, options []string) string {
	log := logging.GetLogger("prompt")

	if len(options) == 0 {
		return ""
	}
	if c.autoYes || !c.interactive {
		log.Debug().Str("question", question).Str("choice", options[0]).
			Msg("Non-interactive selection, using default")
		return options[0]
	}

	if c.usePterm {
		result, err := pterm.DefaultInteractiveSelect.
			WithOptions(options).
			WithDefaultOption(options[0]).
			Show(question)
		if err != nil {
			return options[0]
		}
		return result
	}

	return c.plainSelect(question, options)
}

func (c *Console) plainConfirm(question string, def bool) bool {
	marker := "[y/N]"
	if def {
		marker = "[Y/n]"
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(c.out, "%s %s: ", question, marker)

		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return def
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Fprintln(c.out, "Please answer y or n.")
	}
	return def
}

func (c *Console) plainSelect(question string, options []string) string {
	fmt.Fprintln(c.out, question)
	for i, opt := range options {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, opt)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(c.out, "Choice (1-%d) [1]: ", len(options))

		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return options[0]
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return options[0]
		}
		if choice, err := strconv.Atoi(trimmed); err == nil && choice >= 1 && choice <= len(options) {
			return options[choice-1]
		}
		fmt.Fprintf(c.out, "Please enter a number between 1 and %d.\n", len(options))
	}
	return options[0]
}
