package pacman

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/testutil"
)

func TestCheckUpdatesParsesLines(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Respond("checkupdates", "linux 6.9.1-1 -> 6.9.2-1\nsystemd 255.6-1 -> 255.7-1\n", nil)

	updates, err := CheckUpdates(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, updates, 2)

	assert.Equal(t, Update{Name: "linux", Old: "6.9.1-1", New: "6.9.2-1"}, updates[0])
	assert.Equal(t, "systemd 255.6-1 -> 255.7-1", updates[1].String())
}

func TestCheckUpdatesNothingToDo(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.FailWith("checkupdates", 2, "")

	updates, err := CheckUpdates(context.Background(), r)
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestCheckUpdatesRealFailure(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.FailWith("checkupdates", 1, "unable to sync databases")

	_, err := CheckUpdates(context.Background(), r)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUpdateCheck))
}

func TestCheckUpdatesMalformedLine(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Respond("checkupdates", "not a valid line\n", nil)

	_, err := CheckUpdates(context.Background(), r)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutputParse))
}

func TestUpgradeIgnoresExclusions(t *testing.T) {
	r := testutil.NewFakeRunner()

	err := Upgrade(context.Background(), r, UpgradeOptions{Ignore: []string{"linux", "nvidia"}})
	require.NoError(t, err)

	lines := r.CommandLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "sudo pacman -Syu --noconfirm --noprogressbar --ignore linux --ignore nvidia", lines[0])
}

func TestUpgradeDownloadFirst(t *testing.T) {
	r := testutil.NewFakeRunner()

	err := Upgrade(context.Background(), r, UpgradeOptions{DownloadFirst: true})
	require.NoError(t, err)

	lines := r.CommandLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "sudo pacman -Syuw --noconfirm --noprogressbar", lines[0])
	assert.Equal(t, "sudo pacman -Su --noconfirm --noprogressbar", lines[1])
}

func TestOrphansNoneIsNotAnError(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.FailWith("pacman -Qtdq", 1, "")

	orphans, err := Orphans(context.Background(), r)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestOrphans(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Respond("pacman -Qtdq", "libfoo\nlibbar\n", nil)

	orphans, err := Orphans(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, []string{"libfoo", "libbar"}, orphans)
}

func TestRemoveOrphansEmptyNoop(t *testing.T) {
	r := testutil.NewFakeRunner()
	require.NoError(t, RemoveOrphans(context.Background(), r, nil))
	assert.Empty(t, r.Calls)
}

func TestRemoveOrphans(t *testing.T) {
	r := testutil.NewFakeRunner()
	require.NoError(t, RemoveOrphans(context.Background(), r, []string{"libfoo"}))
	assert.Equal(t, []string{"sudo pacman -Rns --noconfirm libfoo"}, r.CommandLines())
}

func TestCleanCache(t *testing.T) {
	r := testutil.NewFakeRunner()
	require.NoError(t, CleanCache(context.Background(), r, 2, true))

	assert.Equal(t, []string{
		"sudo paccache -rk 2",
		"sudo paccache -ruk0",
	}, r.CommandLines())
}

func TestForeign(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Respond("pacman -Qm", "yay 12.3.5-1\nspotify 1.2.31-1\n", nil)

	pkgs, err := Foreign(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	assert.Equal(t, Package{Name: "yay", Version: "12.3.5-1"}, pkgs[0])
}

func TestAllNames(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Respond("pacman -Slq", "bash\ncoreutils\nfirefox\n", nil)

	names, err := AllNames(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, []string{"bash", "coreutils", "firefox"}, names)
}
