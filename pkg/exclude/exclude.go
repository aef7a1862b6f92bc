// Package exclude manages the persistent exclusion list. Excluded packages
// are never upgraded (pacman/AUR --ignore) and never offered for removal by
// the cleanup steps.
package exclude

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/archmaint/archmaint/pkg/config"
	"github.com/archmaint/archmaint/pkg/errors"
)

// Entry is one excluded package.
type Entry struct {
	Name   string `toml:"name"`
	Reason string `toml:"reason,omitempty"`
	Added  string `toml:"added,omitempty"`
}

// List is the exclusion list bound to its file.
type List struct {
	path    string
	entries []Entry
}

// fileFormat covers both the expanded [[entry]] form this package writes
// and the bare packages = [...] shorthand users tend to write by hand.
type fileFormat struct {
	Packages []string `toml:"packages,omitempty"`
	Entries  []Entry  `toml:"entry,omitempty"`
}

// DefaultPath returns the exclusion list location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(config.UserConfigDir(), "exclude.toml")
}

// Load reads the exclusion list. A missing file is an empty list.
func Load(path string) (*List, error) {
	l := &List{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, errors.Wrapf(err, errors.ErrExcludeLoad, "failed to read %s", path)
	}

	var f fileFormat
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, errors.ErrExcludeLoad, "failed to parse %s", path)
	}

	seen := make(map[string]bool)
	for _, e := range f.Entries {
		name := strings.TrimSpace(e.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		e.Name = name
		l.entries = append(l.entries, e)
	}
	for _, name := range f.Packages {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		l.entries = append(l.entries, Entry{Name: name})
	}

	return l, nil
}

// Add appends a package. Returns false when it was already listed.
func (l *List) Add(name, reason string) bool {
	if l.Contains(name) {
		return false
	}
	l.entries = append(l.entries, Entry{
		Name:   name,
		Reason: reason,
		Added:  time.Now().Format("2006-01-02"),
	})
	return true
}

// Remove drops a package. Returns false when it was not listed.
func (l *List) Remove(name string) bool {
	for i, e := range l.entries {
		if e.Name == name {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether a package is excluded.
func (l *List) Contains(name string) bool {
	for _, e := range l.entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Names returns the excluded package names, sorted.
func (l *List) Names() []string {
	names := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Entries returns a copy of the entries in file order.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Save writes the list atomically in the expanded form.
func (l *List) Save() error {
	data, err := toml.Marshal(fileFormat{Entries: l.entries})
	if err != nil {
		return errors.Wrap(err, errors.ErrExcludeWrite, "failed to encode exclusion list")
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrExcludeWrite,
			"failed to create directory for %s", l.path)
	}

	if err := renameio.WriteFile(l.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrExcludeWrite, "failed to write %s", l.path)
	}
	return nil
}

// Filter returns candidates with every excluded name removed.
func Filter(candidates []string, excluded []string) []string {
	drop := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		drop[name] = true
	}

	var kept []string
	for _, name := range candidates {
		if !drop[name] {
			kept = append(kept, name)
		}
	}
	return kept
}
