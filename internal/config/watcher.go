package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/abhisek/focusflow/internal/log"
)

// DefaultDebounce collapses editor save bursts into one reload.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reloads the config file when it changes on disk and hands each
// successfully loaded config to a callback.
type Watcher struct {
	path     string
	onChange func(*Config)
	debounce time.Duration

	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for path. Call Start to begin watching.
func NewWatcher(path string, debounce time.Duration, onChange func(*Config)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	return &Watcher{
		path:     absPath,
		onChange: onChange,
		debounce: debounce,
		watcher:  w,
	}, nil
}

// Start watches the directory holding the config file, which survives
// editors that replace the file on save. It returns once watching has
// begun; events are processed until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := ensureDir(w.path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch config directory %s: %w", dir, err)
	}

	log.Debug().Str("config_path", w.path).Msg("watching config")
	go w.loop(ctx)
	return nil
}

// Close stops watching and cancels a pending reload.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("config watcher error")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Warn().Err(err).Str("config_path", w.path).Msg("config reload failed")
		return
	}
	log.Info().Str("config_path", w.path).Msg("config reloaded")
	w.onChange(cfg)
}
