package pacfiles

import (
	"context"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/logging"
)

// Watcher reports conflicts as pacman creates them. The update step keeps
// one running during the upgrade transaction so the final report can list
// the conflicts that run produced.
type Watcher struct {
	fsw  *fsnotify.Watcher
	seen chan Conflict
}

// Watch starts watching roots (non-recursively; pacman writes its leftovers
// next to the configs it replaces, and the interesting ones sit directly in
// the configured roots). Close the returned Watcher to stop it.
func Watch(ctx context.Context, roots []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create filesystem watcher")
	}

	for _, root := range roots {
		if err := fsw.Add(root); err != nil {
			_ = fsw.Close()
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to watch %s", root)
		}
	}

	w := &Watcher{
		fsw:  fsw,
		seen: make(chan Conflict, 64),
	}
	go w.loop(ctx)
	return w, nil
}

// Conflicts is the stream of newly appearing conflicts. It is closed when
// the watcher stops.
func (w *Watcher) Conflicts() <-chan Conflict {
	return w.seen
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Drain closes the watcher and returns everything observed so far.
func (w *Watcher) Drain() []Conflict {
	_ = w.Close()

	var conflicts []Conflict
	for c := range w.seen {
		conflicts = append(conflicts, c)
	}
	return conflicts
}

func (w *Watcher) loop(ctx context.Context) {
	log := logging.GetLogger("pacfiles.watch")
	defer close(w.seen)

	reported := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			_ = w.fsw.Close()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.HasSuffix(event.Name, ".pacnew") && !strings.HasSuffix(event.Name, ".pacsave") {
				continue
			}
			if reported[event.Name] {
				continue
			}
			if c, ok := classify(event.Name); ok {
				reported[event.Name] = true
				log.Info().Str("path", c.Path).Msg("New config conflict appeared")
				select {
				case w.seen <- c:
				default:
					// channel full, the post-run Find pass will catch it
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Watcher error")
		}
	}
}
