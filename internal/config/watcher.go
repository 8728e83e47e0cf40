package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/dragscroll/internal/logging"
)

const watcherDebounce = 150 * time.Millisecond

// Watcher reloads the config file when it changes on disk. Editors often
// replace the file instead of writing it, so the parent directory is
// watched and events are filtered by name.
type Watcher struct {
	watcher *fsnotify.Watcher

	paths    *Paths
	path     string
	onReload func(cfg *Config, err error)
	debounce time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

// NewWatcher watches paths.ConfigPath. onReload runs on a timer goroutine
// with the freshly loaded config or the load error.
func NewWatcher(paths *Paths, onReload func(cfg *Config, err error)) (*Watcher, error) {
	if paths == nil || paths.ConfigPath == "" {
		return nil, fmt.Errorf("config watcher: no config path")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	w := &Watcher{
		watcher:  watcher,
		paths:    paths,
		path:     filepath.Clean(paths.ConfigPath),
		onReload: onReload,
		debounce: watcherDebounce,
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("config watcher: watch %s: %w", filepath.Dir(w.path), err)
	}
	return w, nil
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isConfigEvent(event) {
				w.scheduleReload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("config watcher: %v", err)
		}
	}
}

// Close stops the watcher and any pending reload.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	w.timer = nil
	closed := w.closed
	w.mu.Unlock()
	if closed || w.onReload == nil {
		return
	}
	cfg, err := LoadPaths(w.paths)
	if err != nil {
		logging.Warn("config reload failed: %v", err)
	} else {
		logging.Info("config reloaded from %s", w.path)
	}
	w.onReload(cfg, err)
}
