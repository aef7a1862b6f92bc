package pacfiles

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archmaint/archmaint/pkg/prompt"
	"github.com/archmaint/archmaint/pkg/testutil"
)

func timeAfter(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(2 * time.Second)
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pacman.conf"))
	writeFile(t, filepath.Join(root, "pacman.conf.pacnew"))
	writeFile(t, filepath.Join(root, "sub", "hosts.pacsave"))
	writeFile(t, filepath.Join(root, "unrelated.txt"))

	conflicts, err := Find([]string{root})
	require.NoError(t, err)
	require.Len(t, conflicts, 2)

	assert.Equal(t, Pacnew, conflicts[0].Kind)
	assert.Equal(t, filepath.Join(root, "pacman.conf"), conflicts[0].Base)
	assert.Equal(t, Pacsave, conflicts[1].Kind)
	assert.Equal(t, filepath.Join(root, "sub", "hosts"), conflicts[1].Base)
}

func TestFindMissingRootIsSkipped(t *testing.T) {
	conflicts, err := Find([]string{filepath.Join(t.TempDir(), "does-not-exist")})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestMergeTool(t *testing.T) {
	r := testutil.NewFakeRunner()

	tool, err := MergeTool(r, "")
	require.NoError(t, err)
	assert.Equal(t, "meld", tool)

	r.Missing["meld"] = true
	tool, err = MergeTool(r, "")
	require.NoError(t, err)
	assert.Equal(t, "vimdiff", tool)

	tool, err = MergeTool(r, "kdiff3")
	require.NoError(t, err)
	assert.Equal(t, "kdiff3", tool)

	r.Missing["kdiff3"] = true
	r.Missing["vimdiff"] = true
	_, err = MergeTool(r, "kdiff3")
	assert.Error(t, err)
}

func conflictFixture() Conflict {
	return Conflict{
		Path: "/etc/pacman.conf.pacnew",
		Kind: Pacnew,
		Base: "/etc/pacman.conf",
	}
}

func TestResolveMergeAndRemove(t *testing.T) {
	r := testutil.NewFakeRunner()
	// select "merge" (1), then confirm removal (empty -> default yes)
	p := prompt.NewForTest(strings.NewReader("1\n\n"), &strings.Builder{})

	outcomes, err := Resolve(context.Background(), r, p, "meld", []Conflict{conflictFixture()})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, Merged, outcomes[0].Action)

	assert.Equal(t, []string{
		"sudo meld /etc/pacman.conf /etc/pacman.conf.pacnew",
		"sudo rm /etc/pacman.conf.pacnew",
	}, r.CommandLines())
}

func TestResolveMergeKeepFile(t *testing.T) {
	r := testutil.NewFakeRunner()
	p := prompt.NewForTest(strings.NewReader("1\nn\n"), &strings.Builder{})

	outcomes, err := Resolve(context.Background(), r, p, "meld", []Conflict{conflictFixture()})
	require.NoError(t, err)
	assert.Equal(t, Skipped, outcomes[0].Action)
	assert.Equal(t, []string{"sudo meld /etc/pacman.conf /etc/pacman.conf.pacnew"}, r.CommandLines())
}

func TestResolveSkip(t *testing.T) {
	r := testutil.NewFakeRunner()
	p := prompt.NewForTest(strings.NewReader("2\n"), &strings.Builder{})

	outcomes, err := Resolve(context.Background(), r, p, "meld", []Conflict{conflictFixture()})
	require.NoError(t, err)
	assert.Equal(t, Skipped, outcomes[0].Action)
	assert.Empty(t, r.Calls)
}

func TestResolveDelete(t *testing.T) {
	r := testutil.NewFakeRunner()
	p := prompt.NewForTest(strings.NewReader("3\n"), &strings.Builder{})

	outcomes, err := Resolve(context.Background(), r, p, "meld", []Conflict{conflictFixture()})
	require.NoError(t, err)
	assert.Equal(t, Deleted, outcomes[0].Action)
	assert.Equal(t, []string{"sudo rm /etc/pacman.conf.pacnew"}, r.CommandLines())
}

func TestResolveMergeToolFailure(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.FailWith("meld /etc/pacman.conf /etc/pacman.conf.pacnew", 1, "boom")
	p := prompt.NewForTest(strings.NewReader("1\n"), &strings.Builder{})

	_, err := Resolve(context.Background(), r, p, "meld", []Conflict{conflictFixture()})
	assert.Error(t, err)
}

func TestWatchReportsNewConflicts(t *testing.T) {
	root := t.TempDir()

	w, err := Watch(context.Background(), []string{root})
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "hosts.pacnew"))
	writeFile(t, filepath.Join(root, "ignored.txt"))

	select {
	case c := <-w.Conflicts():
		assert.Equal(t, Pacnew, c.Kind)
		assert.Equal(t, filepath.Join(root, "hosts"), c.Base)
	case <-timeAfter(t):
		t.Fatal("timed out waiting for conflict event")
	}

	require.NoError(t, w.Close())
}

func TestWatchDrain(t *testing.T) {
	root := t.TempDir()

	w, err := Watch(context.Background(), []string{root})
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "fstab.pacsave"))

	// give the watcher goroutine a moment to pick up the event
	select {
	case c := <-w.Conflicts():
		assert.Equal(t, Pacsave, c.Kind)
	case <-timeAfter(t):
		t.Fatal("timed out waiting for conflict event")
	}

	conflicts := w.Drain()
	assert.Empty(t, conflicts) // already consumed above
}
