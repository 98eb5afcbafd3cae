// Package watcher re-runs a callback whenever the schema file changes
// on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/carlosnayan/prisma-schema/internal/logger"
)

// DefaultDebounce absorbs the bursts of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher monitors a schema file and invokes OnChange after each save.
type Watcher struct {
	schemaPath string
	debounce   time.Duration

	// OnChange runs on the watcher goroutine. A returned error is
	// logged and watching continues.
	OnChange func(path string) error
}

// New creates a watcher for the given schema file.
func New(schemaPath string, onChange func(path string) error) *Watcher {
	return &Watcher{
		schemaPath: schemaPath,
		debounce:   DefaultDebounce,
		OnChange:   onChange,
	}
}

// SetDebounce overrides the debounce interval. Useful in tests.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches until the context is canceled. The directory is watched
// rather than the file itself: editors replace the file on save, which
// would break a direct watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer fw.Close()

	absPath, err := filepath.Abs(w.schemaPath)
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	logger.Info("watching %s", absPath)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.matches(event, absPath) {
				continue
			}
			// Coalesce the write/rename/chmod burst into one callback
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			logger.Info("change detected in %s", w.schemaPath)
			if err := w.OnChange(w.schemaPath); err != nil {
				logger.Error("reload failed: %v", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func (w *Watcher) matches(event fsnotify.Event, absPath string) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	eventPath, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return eventPath == absPath
}
