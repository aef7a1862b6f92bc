// Package snapshot wraps snapper to take pre/post snapshots around the
// mutating maintenance steps.
package snapshot

import (
	"context"
	"strconv"
	"strings"
	"syscall"

	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/logging"
	"github.com/archmaint/archmaint/pkg/system"
)

// Kind is the snapper snapshot type.
type Kind string

const (
	Pre    Kind = "pre"
	Post   Kind = "post"
	Single Kind = "single"
)

// Config is a snapper configuration and the subvolume it covers.
type Config struct {
	Name      string
	Subvolume string
}

// statfs is swappable for tests.
var statfs = syscall.Statfs

// Available reports whether snapper is installed.
func Available(r system.Runner) bool {
	return system.Available(r, "snapper")
}

// Configs lists the snapper configurations on this system.
func Configs(ctx context.Context, r system.Runner) ([]Config, error) {
	out, err := r.SudoOutput(ctx, "snapper", "list-configs")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSnapshotConfig, "snapper list-configs failed")
	}
	return parseConfigs(out), nil
}

// Create takes a snapshot and returns its number. For post snapshots,
// preNumber links the pair; it is ignored otherwise.
func Create(ctx context.Context, r system.Runner, config string, kind Kind, description string, preNumber int) (int, error) {
	args := []string{"-c", config, "create", "-t", string(kind), "-d", description, "--print-number"}
	if kind == Post && preNumber > 0 {
		args = append(args, "--pre-number", strconv.Itoa(preNumber))
	}

	out, err := r.SudoOutput(ctx, "snapper", args...)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrSnapshotCreate,
			"snapshot creation failed for config %s", config)
	}

	number, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrOutputParse,
			"snapper returned a non-numeric snapshot id: %q", strings.TrimSpace(out))
	}

	log := logging.GetLogger("snapshot")
	log.Info().
		Str("config", config).
		Str("kind", string(kind)).
		Int("number", number).
		Msg("Snapshot created")
	return number, nil
}

// FreeSpaceOK reports whether the filesystem holding path has at least
// minPercent free space, along with the measured percentage.
func FreeSpaceOK(path string, minPercent int) (bool, int, error) {
	var st syscall.Statfs_t
	if err := statfs(path, &st); err != nil {
		return false, 0, errors.Wrapf(err, errors.ErrSnapshotSpace,
			"statfs failed for %s", path)
	}
	if st.Blocks == 0 {
		return false, 0, errors.Newf(errors.ErrSnapshotSpace,
			"filesystem at %s reports zero blocks", path)
	}

	freePercent := int(st.Bavail * 100 / st.Blocks)
	return freePercent >= minPercent, freePercent, nil
}

// parseConfigs reads snapper's list-configs table:
//
//	Config | Subvolume
//	-------+----------
//	root   | /
func parseConfigs(out string) []Config {
	var configs []Config
	pastHeader := false
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "---") || strings.Contains(line, "-+-") {
			pastHeader = true
			continue
		}
		if !pastHeader {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		subvol := strings.TrimSpace(parts[1])
		if name == "" {
			continue
		}
		configs = append(configs, Config{Name: name, Subvolume: subvol})
	}
	return configs
}
