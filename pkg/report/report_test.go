package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *Summary {
	s := NewSummary()
	s.Add(Result{Name: "repo update", Status: StatusOK, Detail: "12 packages updated",
		Duration: 3 * time.Second, Items: []string{"linux 6.9.1-1 -> 6.9.2-1"}})
	s.Add(Result{Name: "aur update", Status: StatusSkipped, Detail: "no AUR helper installed"})
	s.Add(Result{Name: "disk health", Status: StatusWarn, Detail: "1 device failing"})
	return s
}

func TestExitCode(t *testing.T) {
	s := NewSummary()
	assert.Equal(t, ExitOK, s.ExitCode())

	s.Add(Result{Name: "a", Status: StatusOK})
	assert.Equal(t, ExitOK, s.ExitCode())

	s.Add(Result{Name: "b", Status: StatusWarn})
	assert.Equal(t, ExitWarnings, s.ExitCode())

	s.Add(Result{Name: "c", Status: StatusFailed})
	assert.Equal(t, ExitFailure, s.ExitCode())
}

func TestCounts(t *testing.T) {
	s := sampleSummary()
	counts := s.Counts()
	assert.Equal(t, 1, counts[StatusOK])
	assert.Equal(t, 1, counts[StatusSkipped])
	assert.Equal(t, 1, counts[StatusWarn])
	assert.Equal(t, 0, counts[StatusFailed])
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	RenderPlain(&buf, sampleSummary())
	out := buf.String()

	assert.Contains(t, out, "Maintenance summary")
	assert.Contains(t, out, "repo update")
	assert.Contains(t, out, "12 packages updated")
	assert.Contains(t, out, "linux 6.9.1-1 -> 6.9.2-1")
	assert.Contains(t, out, "1 ok, 1 skipped, 1 warnings, 0 failed")
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleSummary())

	assert.Contains(t, md, "# Maintenance summary")
	assert.Contains(t, md, "| repo update | ok | 12 packages updated |")
	assert.Contains(t, md, "## repo update")
	assert.Contains(t, md, "- linux 6.9.1-1 -> 6.9.2-1")
	// steps without items get no section
	assert.False(t, strings.Contains(md, "## aur update"))
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, sampleSummary()))
	assert.NotEmpty(t, buf.String())
}

func TestResultConstructors(t *testing.T) {
	started := time.Now().Add(-time.Second)

	ok := OKResult("clean", "3 orphans removed", started)
	assert.Equal(t, StatusOK, ok.Status)
	assert.GreaterOrEqual(t, ok.Duration, time.Second)

	skip := SkipResult("flatpak update", "flatpak not installed")
	assert.Equal(t, StatusSkipped, skip.Status)
	assert.Zero(t, skip.Duration)

	fail := FailResult("repo update", fmt.Errorf("pacman exited 1"), started)
	assert.Equal(t, StatusFailed, fail.Status)
	assert.Contains(t, fail.Detail, "pacman exited 1")
}
