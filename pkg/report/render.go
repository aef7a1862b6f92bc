package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

// statusStyle returns the pterm style for a step status badge.
func statusStyle(status Status) *pterm.Style {
	switch status {
	case StatusOK:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusWarn:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Render writes the summary. Styled output needs a color-capable terminal;
// everything else gets the plain rendition.
func Render(w io.Writer, s *Summary) {
	if termenv.DefaultOutput().ColorProfile() == termenv.Ascii {
		RenderPlain(w, s)
		return
	}

	fmt.Fprintln(w, titleStyle.Render("Maintenance summary"))
	fmt.Fprintln(w)

	for _, r := range s.Results {
		badge := statusStyle(r.Status).Sprintf("%-8s", strings.ToUpper(string(r.Status)))
		line := fmt.Sprintf("  %s %-18s %s", badge, r.Name, r.Detail)
		if r.Duration > 0 {
			line += mutedStyle.Render(fmt.Sprintf(" (%.1fs)", r.Duration.Seconds()))
		}
		fmt.Fprintln(w, line)

		for _, item := range r.Items {
			fmt.Fprintf(w, "           - %s\n", item)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, mutedStyle.Render(countsLine(s)))
}

// RenderPlain writes the summary without any styling.
func RenderPlain(w io.Writer, s *Summary) {
	fmt.Fprintln(w, "Maintenance summary")
	for _, r := range s.Results {
		fmt.Fprintf(w, "  %-8s %-18s %s\n", strings.ToUpper(string(r.Status)), r.Name, r.Detail)
		for _, item := range r.Items {
			fmt.Fprintf(w, "           - %s\n", item)
		}
	}
	fmt.Fprintln(w, countsLine(s))
}

// Markdown renders the summary as a markdown document.
func Markdown(s *Summary) string {
	var b strings.Builder
	b.WriteString("# Maintenance summary\n\n")
	b.WriteString("| Step | Status | Detail |\n")
	b.WriteString("|------|--------|--------|\n")
	for _, r := range s.Results {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", r.Name, r.Status, r.Detail)
	}

	for _, r := range s.Results {
		if len(r.Items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", r.Name)
		for _, item := range r.Items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", countsLine(s))
	return b.String()
}

// RenderMarkdown writes the markdown summary through glamour for terminal
// display.
func RenderMarkdown(w io.Writer, s *Summary) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}

	out, err := renderer.Render(Markdown(s))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func countsLine(s *Summary) string {
	counts := s.Counts()
	return fmt.Sprintf("%d ok, %d skipped, %d warnings, %d failed (%.1fs)",
		counts[StatusOK], counts[StatusSkipped], counts[StatusWarn], counts[StatusFailed],
		s.Elapsed().Seconds())
}
