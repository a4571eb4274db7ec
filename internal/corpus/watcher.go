package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce coalesces the burst of events an editor or generator
// fires while rewriting the corpus file.
const defaultDebounce = 500 * time.Millisecond

// Watcher watches a corpus file and reports when it changes. It
// watches the containing directory rather than the file itself, since
// most writers replace the file and that breaks a direct watch.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher for the corpus file at path.
// A non-positive debounce selects the default.
func NewWatcher(path string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
	}
}

// Watch starts watching and returns a channel that delivers the corpus
// path after each settled change. The channel closes when ctx is
// cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan string, error) {
	if _, err := os.Stat(w.path); err != nil {
		return nil, fmt.Errorf("corpus path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching corpus directory: %w", err)
	}
	w.watcher = watcher

	changes := make(chan string)
	go w.run(ctx, changes)

	return changes, nil
}

// run forwards settled file events until the context is cancelled.
func (w *Watcher) run(ctx context.Context, changes chan<- string) {
	defer close(changes)

	var timer *time.Timer
	var pending <-chan time.Time

	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			// Restart the debounce window on every event
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			select {
			case changes <- w.path:
			case <-ctx.Done():
				return
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}
