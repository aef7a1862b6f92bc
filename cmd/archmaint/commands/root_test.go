package commands

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func isolateXDG(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

func TestNoCommandShowsHelp(t *testing.T) {
	isolateXDG(t)

	out, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, out, "MAINTENANCE:")
}

func TestHelpListsCommands(t *testing.T) {
	isolateXDG(t)

	out, err := execute(t, "--help")
	require.NoError(t, err)

	for _, name := range []string{
		"run", "update", "clean", "health", "snapshot",
		"pacfiles", "exclude", "match", "news", "genconfig",
	} {
		assert.Contains(t, out, name)
	}
}

func TestVersionCommand(t *testing.T) {
	isolateXDG(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "archmaint version")
}

func TestUnknownCommand(t *testing.T) {
	isolateXDG(t)

	_, err := execute(t, "defragment")
	assert.Error(t, err)
}

func TestGenconfigPrintsDefaults(t *testing.T) {
	isolateXDG(t)

	out, err := execute(t, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "[update]")
	assert.Contains(t, out, "[snapshot]")
	assert.Contains(t, out, "min_free_percent")
}

func TestExcludeAddAndList(t *testing.T) {
	isolateXDG(t)

	out, err := execute(t, "exclude", "add", "linux-lts", "--reason", "pinned")
	require.NoError(t, err)
	assert.Contains(t, out, "Excluded linux-lts")

	out, err = execute(t, "exclude", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "linux-lts")
	assert.Contains(t, out, "pinned")

	out, err = execute(t, "exclude", "remove", "linux-lts")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed linux-lts")

	out, err = execute(t, "exclude", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No packages excluded.")
}

func TestCompletionGeneratesScript(t *testing.T) {
	isolateXDG(t)

	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "archmaint")
}

func TestManWritesToRequestedDir(t *testing.T) {
	isolateXDG(t)

	dir := t.TempDir()
	_, err := execute(t, "man", "--dir", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "archmaint.1")
	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, ".1"), name)
	}
}
