// Package flatpak wraps the flatpak CLI for application updates and
// unused-runtime cleanup.
package flatpak

import (
	"context"
	"strings"

	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/system"
)

// App is an installed flatpak application.
type App struct {
	// ID is the reverse-DNS application identifier, e.g. org.mozilla.firefox.
	ID      string
	Name    string
	Version string
}

// Available reports whether the flatpak binary is installed at all.
func Available(r system.Runner) bool {
	return system.Available(r, "flatpak")
}

// Installed lists installed flatpak applications.
func Installed(ctx context.Context, r system.Runner) ([]App, error) {
	out, err := r.Output(ctx, "flatpak", "list", "--app", "--columns=application,name,version")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCommandFailed, "flatpak list failed")
	}

	var apps []App
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Columns are tab separated; version may be empty.
		fields := strings.Split(line, "\t")
		app := App{ID: strings.TrimSpace(fields[0])}
		if len(fields) > 1 {
			app.Name = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			app.Version = strings.TrimSpace(fields[2])
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// Update updates all flatpak applications and runtimes.
func Update(ctx context.Context, r system.Runner) error {
	if err := r.Run(ctx, "flatpak", "update", "--noninteractive"); err != nil {
		return errors.Wrap(err, errors.ErrUpgradeFailed, "flatpak update failed")
	}
	return nil
}

// RemoveUnused uninstalls runtimes and extensions nothing depends on anymore.
func RemoveUnused(ctx context.Context, r system.Runner) error {
	if err := r.Run(ctx, "flatpak", "uninstall", "--unused", "--noninteractive"); err != nil {
		return errors.Wrap(err, errors.ErrCacheClean, "flatpak unused removal failed")
	}
	return nil
}
