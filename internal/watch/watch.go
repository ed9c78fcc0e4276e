// Package watch re-runs a callback whenever a plan file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/logger"
)

// HandlerFunc receives the full file contents after each settled change.
type HandlerFunc func(text string) error

// Watcher follows a single file. The parent directory is watched so that
// editors which save by rename are picked up too.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// New creates a watcher for path. A zero debounce uses constants.WatchDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = constants.WatchDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, debounce: debounce, fsw: fsw}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run calls handle once with the current contents, then again after every
// burst of writes settles. Handler errors are logged and do not stop the
// loop. Run returns when ctx is done or the watcher fails.
func (w *Watcher) Run(ctx context.Context, handle HandlerFunc) error {
	defer w.fsw.Close()

	w.fire(handle)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("File event", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case <-timer.C:
			w.fire(handle)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher: %w", err)
		}
	}
}

func (w *Watcher) fire(handle HandlerFunc) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// The file may be mid-replace; the Create event that follows retries.
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to read watched file", "path", w.path, "error", err)
		}
		return
	}
	if err := handle(string(data)); err != nil {
		logger.Warn("Watch handler failed", "path", w.path, "error", err)
	}
}
