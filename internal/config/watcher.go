package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"daydream/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk and hands the
// result to a callback. Rapid saves are debounced.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	onChange func(*Config)
	debounce time.Duration
	pending  time.Time
	reloads  int
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  w,
		path:     path,
		onChange: onChange,
		debounce: 200 * time.Millisecond,
	}, nil
}

// Run watches until ctx is cancelled. The directory is watched rather than
// the file so editors that replace the file atomically are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		logging.Get(logging.CategoryConfig).Warn("Watcher: cannot watch %s: %v", dir, err)
		<-ctx.Done()
		return nil
	}
	logging.Get(logging.CategoryConfig).Info("Watcher: watching %s", w.path)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Get(logging.CategoryConfig).Error("Watcher error: %v", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.reloads++
	w.mu.Unlock()

	cfg, err := Load(w.path)
	if err != nil {
		logging.Get(logging.CategoryConfig).Warn("Watcher: reload failed: %v", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		logging.Get(logging.CategoryConfig).Warn("Watcher: reloaded config invalid: %v", err)
		return
	}
	logging.Get(logging.CategoryConfig).Info("Watcher: config reloaded")
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

// Reloads returns how many debounced reloads were attempted.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}
