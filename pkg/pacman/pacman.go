// Package pacman wraps the official repository tooling: checkupdates,
// pacman itself and paccache.
package pacman

import (
	"context"
	"fmt"
	"strings"

	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/logging"
	"github.com/archmaint/archmaint/pkg/system"
)

// Update describes one pending package update.
type Update struct {
	Name string
	Old  string
	New  string
}

func (u Update) String() string {
	return fmt.Sprintf("%s %s -> %s", u.Name, u.Old, u.New)
}

// Package is an installed package with its version, as printed by pacman -Q.
type Package struct {
	Name    string
	Version string
}

// UpgradeOptions controls the upgrade transaction.
type UpgradeOptions struct {
	// DownloadFirst fetches all packages before the transaction starts.
	DownloadFirst bool
	// Ignore lists packages passed to pacman via --ignore.
	Ignore []string
}

// CheckUpdates lists pending official repository updates using checkupdates,
// which syncs against a temporary database and never needs root.
// checkupdates exits 2 when there is nothing to do.
func CheckUpdates(ctx context.Context, r system.Runner) ([]Update, error) {
	out, err := r.Output(ctx, "checkupdates")
	if err != nil {
		if system.ExitCode(err) == 2 {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrUpdateCheck, "checkupdates failed")
	}
	return parseUpdates(out)
}

// Upgrade runs the full system upgrade. Output streams to the terminal so
// pacman's own progress and prompts stay visible.
func Upgrade(ctx context.Context, r system.Runner, opts UpgradeOptions) error {
	log := logging.GetLogger("pacman")

	ignoreArgs := make([]string, 0, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignoreArgs = append(ignoreArgs, "--ignore", name)
	}

	if opts.DownloadFirst {
		log.Info().Msg("Downloading packages before upgrade")
		args := append([]string{"-Syuw", "--noconfirm", "--noprogressbar"}, ignoreArgs...)
		if err := r.Sudo(ctx, "pacman", args...); err != nil {
			return errors.Wrap(err, errors.ErrUpgradeFailed, "package download failed")
		}
		args = append([]string{"-Su", "--noconfirm", "--noprogressbar"}, ignoreArgs...)
		if err := r.Sudo(ctx, "pacman", args...); err != nil {
			return errors.Wrap(err, errors.ErrUpgradeFailed, "system upgrade failed")
		}
		return nil
	}

	args := append([]string{"-Syu", "--noconfirm", "--noprogressbar"}, ignoreArgs...)
	if err := r.Sudo(ctx, "pacman", args...); err != nil {
		return errors.Wrap(err, errors.ErrUpgradeFailed, "system upgrade failed")
	}
	return nil
}

// Orphans lists packages installed as dependencies that nothing requires
// anymore. pacman -Qtdq exits 1 with no output when there are none.
func Orphans(ctx context.Context, r system.Runner) ([]string, error) {
	out, err := r.Output(ctx, "pacman", "-Qtdq")
	if err != nil {
		if system.ExitCode(err) == 1 && strings.TrimSpace(out) == "" {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrOrphanRemove, "orphan listing failed")
	}
	return splitLines(out), nil
}

// RemoveOrphans removes the given orphans recursively with their configs.
func RemoveOrphans(ctx context.Context, r system.Runner, names []string) error {
	if len(names) == 0 {
		return nil
	}
	args := append([]string{"-Rns", "--noconfirm"}, names...)
	if err := r.Sudo(ctx, "pacman", args...); err != nil {
		return errors.Wrap(err, errors.ErrOrphanRemove, "orphan removal failed")
	}
	return nil
}

// CleanCache trims the package cache, keeping the newest keep versions of
// each installed package. When uninstalled is set, cached versions of
// packages no longer installed are dropped entirely.
func CleanCache(ctx context.Context, r system.Runner, keep int, uninstalled bool) error {
	if err := r.Sudo(ctx, "paccache", "-rk", fmt.Sprint(keep)); err != nil {
		return errors.Wrap(err, errors.ErrCacheClean, "cache trim failed")
	}
	if uninstalled {
		if err := r.Sudo(ctx, "paccache", "-ruk0"); err != nil {
			return errors.Wrap(err, errors.ErrCacheClean, "uninstalled cache cleanup failed")
		}
	}
	return nil
}

// Foreign lists packages not found in any sync database, which on an Arch
// system means AUR or manually installed packages.
func Foreign(ctx context.Context, r system.Runner) ([]Package, error) {
	out, err := r.Output(ctx, "pacman", "-Qm")
	if err != nil {
		if system.ExitCode(err) == 1 && strings.TrimSpace(out) == "" {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCommandFailed, "foreign package listing failed")
	}

	var pkgs []Package
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		pkgs = append(pkgs, Package{Name: fields[0], Version: fields[1]})
	}
	return pkgs, nil
}

// AllNames lists every package name known to the sync databases. This is
// the corpus the fuzzy matcher searches.
func AllNames(ctx context.Context, r system.Runner) ([]string, error) {
	out, err := r.Output(ctx, "pacman", "-Slq")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCommandFailed, "repository name listing failed")
	}
	return splitLines(out), nil
}

func parseUpdates(out string) ([]Update, error) {
	var updates []Update
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		// "name old -> new"
		if len(fields) != 4 || fields[2] != "->" {
			return nil, errors.Newf(errors.ErrOutputParse,
				"unexpected checkupdates line: %q", line)
		}
		updates = append(updates, Update{Name: fields[0], Old: fields[1], New: fields[3]})
	}
	return updates, nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
