package exclude

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "exclude.toml")
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	l, err := Load(testPath(t))
	require.NoError(t, err)
	assert.Empty(t, l.Names())
}

func TestAddRemoveRoundTrip(t *testing.T) {
	path := testPath(t)

	l, err := Load(path)
	require.NoError(t, err)

	assert.True(t, l.Add("linux", "kernel pinned during freeze"))
	assert.True(t, l.Add("nvidia", ""))
	assert.False(t, l.Add("linux", "already there"))
	require.NoError(t, l.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"linux", "nvidia"}, reloaded.Names())
	assert.True(t, reloaded.Contains("linux"))

	entries := reloaded.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "kernel pinned during freeze", entries[0].Reason)
	assert.NotEmpty(t, entries[0].Added)

	assert.True(t, reloaded.Remove("linux"))
	assert.False(t, reloaded.Remove("linux"))
	require.NoError(t, reloaded.Save())

	final, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"nvidia"}, final.Names())
}

func TestLoadShorthandForm(t *testing.T) {
	path := testPath(t)
	require.NoError(t, os.WriteFile(path, []byte("packages = [\"linux\", \"grub\"]\n"), 0644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"grub", "linux"}, l.Names())
}

func TestLoadMixedFormsDeduplicates(t *testing.T) {
	path := testPath(t)
	content := `packages = ["linux"]

[[entry]]
name = "linux"
reason = "pinned"

[[entry]]
name = "grub"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"grub", "linux"}, l.Names())

	// the entry form wins, keeping its reason
	for _, e := range l.Entries() {
		if e.Name == "linux" {
			assert.Equal(t, "pinned", e.Reason)
		}
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := testPath(t)
	require.NoError(t, os.WriteFile(path, []byte("packages = [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "exclude.toml")

	l := &List{path: path}
	l.Add("linux", "")
	require.NoError(t, l.Save())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFilter(t *testing.T) {
	candidates := []string{"libfoo", "linux", "libbar"}
	kept := Filter(candidates, []string{"linux"})
	assert.Equal(t, []string{"libfoo", "libbar"}, kept)

	assert.Equal(t, candidates, Filter(candidates, nil))
	assert.Empty(t, Filter(nil, []string{"linux"}))
}
