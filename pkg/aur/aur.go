// Package aur wraps the AUR helper. Which helper is in use is detected at
// runtime since archmaint has no AUR code of its own.
package aur

import (
	"context"
	"strings"

	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/logging"
	"github.com/archmaint/archmaint/pkg/pacman"
	"github.com/archmaint/archmaint/pkg/system"
)

// Helper is a detected AUR helper binary.
type Helper struct {
	Name   string
	runner system.Runner
}

// Detect finds a usable AUR helper. The configured name wins; otherwise yay,
// then paru. Returns an ErrToolMissing error when none is installed.
func Detect(r system.Runner, configured string) (*Helper, error) {
	name, err := system.FirstAvailable(r, configured, "yay", "paru")
	if err != nil {
		return nil, err
	}
	log := logging.GetLogger("aur")
	log.Debug().Str("helper", name).Msg("AUR helper detected")
	return &Helper{Name: name, runner: r}, nil
}

// Updates lists pending AUR updates (<helper> -Qua prints
// "name old -> new" lines and exits nonzero when there are none).
func (h *Helper) Updates(ctx context.Context) ([]pacman.Update, error) {
	out, err := h.runner.Output(ctx, h.Name, "-Qua")
	if err != nil {
		if strings.TrimSpace(out) == "" {
			// Helpers exit 1 with no output when everything is current.
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrUpdateCheck, "%s -Qua failed", h.Name)
	}

	var updates []pacman.Update
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 4 || fields[2] != "->" {
			continue
		}
		updates = append(updates, pacman.Update{Name: fields[0], Old: fields[1], New: fields[3]})
	}
	return updates, nil
}

// Upgrade updates all AUR packages. AUR helpers refuse to run as root, so
// this never goes through sudo; the helper escalates itself when needed.
func (h *Helper) Upgrade(ctx context.Context, ignore []string) error {
	args := []string{"-Sua", "--noconfirm"}
	for _, name := range ignore {
		args = append(args, "--ignore", name)
	}
	if err := h.runner.Run(ctx, h.Name, args...); err != nil {
		return errors.Wrapf(err, errors.ErrUpgradeFailed, "%s upgrade failed", h.Name)
	}
	return nil
}
