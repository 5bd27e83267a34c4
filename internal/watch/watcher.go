// Package watch triggers incremental re-scans when new photos land in the
// folder.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/genba-tools/photoflow/internal/engine"
)

// Watcher debounces filesystem events on a photo folder and invokes a
// callback once the folder has settled.
type Watcher struct {
	folder   string
	debounce time.Duration
	log      *zap.SugaredLogger
	fsw      *fsnotify.Watcher

	mu    sync.Mutex
	dirty bool
}

// New watches folder. debounce is how long to wait for more changes before
// firing; zero picks a default suited to photo uploads.
func New(folder string, debounce time.Duration, log *zap.SugaredLogger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(folder); err != nil {
		fsw.Close()
		return nil, err
	}
	if debounce == 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{folder: folder, debounce: debounce, log: log, fsw: fsw}, nil
}

// Run blocks until ctx is done, calling onSettle after each debounced burst
// of new image files. Callback errors are logged, not fatal; the watcher
// keeps going so a transient backend outage only delays classification.
func (w *Watcher) Run(ctx context.Context, onSettle func(ctx context.Context) error) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !engine.IsImage(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.dirty = true
			w.mu.Unlock()
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watch error", "error", err)

		case <-timer.C:
			w.mu.Lock()
			fire := w.dirty
			w.dirty = false
			w.mu.Unlock()
			if !fire {
				continue
			}
			w.log.Infow("folder settled, re-scanning", "folder", w.folder)
			if err := onSettle(ctx); err != nil {
				w.log.Warnw("re-scan failed", "error", err)
			}
		}
	}
}
