package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yndnr/routeguard-go/internal/telemetry/logger"
)

// debounceWindow absorbs the editor write/rename bursts that fsnotify
// reports as several events for one logical change.
const debounceWindow = 250 * time.Millisecond

// Watcher watches the configuration file and delivers reloaded configs.
type Watcher struct {
	loader   *Loader
	path     string
	watcher  *fsnotify.Watcher
	onReload func(*Config)
	logger   logger.Logger

	mu      sync.Mutex
	pending *time.Timer
	done    chan struct{}
}

// NewWatcher creates a watcher for the loader's configuration file.
// onReload is called with each successfully reloaded and verified Config;
// reloads that fail to parse or verify are logged and dropped, keeping
// the previous configuration in effect.
func NewWatcher(loader *Loader, onReload func(*Config), log logger.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		loader:   loader,
		path:     loader.filePath,
		watcher:  fsw,
		onReload: onReload,
		logger:   log,
		done:     make(chan struct{}),
	}

	// Watch the directory, not the file, to catch vim-style renames.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(debounceWindow, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Reload()
	if err != nil {
		w.logger.Error("config reload failed, keeping previous configuration", "error", err)
		return
	}
	w.logger.Info("configuration reloaded", "filters", len(cfg.Filters))
	w.onReload(cfg)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()
	close(w.done)
	return w.watcher.Close()
}
