// Package pacfiles finds and resolves the .pacnew/.pacsave files pacman
// leaves behind when a package ships a config the admin has modified.
package pacfiles

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/logging"
	"github.com/archmaint/archmaint/pkg/prompt"
	"github.com/archmaint/archmaint/pkg/system"
)

// Kind distinguishes the two conflict flavors pacman produces.
type Kind string

const (
	Pacnew  Kind = "pacnew"
	Pacsave Kind = "pacsave"
)

// Conflict is one leftover config file.
type Conflict struct {
	// Path is the .pacnew/.pacsave file itself.
	Path string
	Kind Kind
	// Base is the live config file the conflict belongs to.
	Base string
}

// Action is what the user chose to do with a conflict.
type Action string

const (
	Merged  Action = "merged"
	Skipped Action = "skipped"
	Deleted Action = "deleted"
)

// Outcome pairs a conflict with its resolution.
type Outcome struct {
	Conflict Conflict
	Action   Action
}

// Find walks roots looking for conflicts. Unreadable directories are
// skipped rather than failing the walk; /etc always has a few.
func Find(roots []string) ([]Conflict, error) {
	log := logging.GetLogger("pacfiles")

	var conflicts []Conflict
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Debug().Str("path", path).Err(err).Msg("Skipping unreadable path")
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if c, ok := classify(path); ok {
				conflicts = append(conflicts, c)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "walking %s failed", root)
		}
	}
	return conflicts, nil
}

// MergeTool picks the merge tool: the configured binary first, then meld,
// then vimdiff.
func MergeTool(r system.Runner, configured string) (string, error) {
	tool, err := system.FirstAvailable(r, configured, "meld", "vimdiff")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrMergeTool, "no merge tool available")
	}
	return tool, nil
}

// Resolve walks the user through each conflict: merge, skip or delete.
// Merging opens the tool on the live file and the incoming one; a clean
// exit is followed by a confirmation before the leftover file is removed.
func Resolve(ctx context.Context, r system.Runner, p prompt.Prompter, tool string, conflicts []Conflict) ([]Outcome, error) {
	log := logging.GetLogger("pacfiles")

	outcomes := make([]Outcome, 0, len(conflicts))
	for _, c := range conflicts {
		choice := p.Select("Resolve "+c.Path, []string{"merge", "skip", "delete"})

		switch choice {
		case "merge":
			if err := r.Sudo(ctx, tool, c.Base, c.Path); err != nil {
				return outcomes, errors.Wrapf(err, errors.ErrMergeFailed,
					"merge tool failed for %s", c.Path)
			}
			if p.Confirm("Merge done, remove "+c.Path+"?", true) {
				if err := remove(ctx, r, c.Path); err != nil {
					return outcomes, err
				}
				outcomes = append(outcomes, Outcome{Conflict: c, Action: Merged})
			} else {
				outcomes = append(outcomes, Outcome{Conflict: c, Action: Skipped})
			}

		case "delete":
			if err := remove(ctx, r, c.Path); err != nil {
				return outcomes, err
			}
			outcomes = append(outcomes, Outcome{Conflict: c, Action: Deleted})

		default:
			log.Debug().Str("path", c.Path).Msg("Conflict skipped")
			outcomes = append(outcomes, Outcome{Conflict: c, Action: Skipped})
		}
	}
	return outcomes, nil
}

// remove deletes through the runner since the files live under /etc.
func remove(ctx context.Context, r system.Runner, path string) error {
	if err := r.Sudo(ctx, "rm", path); err != nil {
		return errors.Wrapf(err, errors.ErrMergeFailed, "failed to remove %s", path)
	}
	return nil
}

func classify(path string) (Conflict, bool) {
	switch {
	case strings.HasSuffix(path, ".pacnew"):
		return Conflict{
			Path: path,
			Kind: Pacnew,
			Base: strings.TrimSuffix(path, ".pacnew"),
		}, true
	case strings.HasSuffix(path, ".pacsave"):
		return Conflict{
			Path: path,
			Kind: Pacsave,
			Base: strings.TrimSuffix(path, ".pacsave"),
		}, true
	}
	return Conflict{}, false
}
