package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk and notifies
// registered callbacks with the freshly merged configuration. Invalid
// edits are ignored so a half-saved file never clobbers a running
// session.
type Watcher struct {
	configPath string

	mu        sync.Mutex
	callbacks []func(*Config)
	lastLoad  time.Time

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// NewWatcher creates a watcher for cfg's config file. The containing
// directory is watched so editors that replace the file atomically are
// still picked up.
func NewWatcher(cfg *Config) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := cfg.EnsureDataDir(); err != nil {
		w.Close()
		return nil, err
	}

	configPath := cfg.ConfigFile()
	if err := w.Add(filepath.Dir(configPath)); err != nil {
		w.Close()
		return nil, err
	}

	return &Watcher{
		configPath: configPath,
		watcher:    w,
		stopCh:     make(chan struct{}),
	}, nil
}

// OnReload registers a callback invoked after each successful reload.
func (w *Watcher) OnReload(cb func(*Config)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, cb)
	w.mu.Unlock()
}

// Start begins watching for config changes.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.configPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.reload()
			}

		case <-w.watcher.Errors:
			// Continue on errors
		}
	}
}

// reload re-reads the config file. Editors fire several events per save,
// so reloads within a short window are coalesced.
func (w *Watcher) reload() {
	w.mu.Lock()
	if time.Since(w.lastLoad) < 100*time.Millisecond {
		w.mu.Unlock()
		return
	}
	w.lastLoad = time.Now()
	callbacks := make([]func(*Config), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	cfg, err := loadFrom(Default(), w.configPath)
	if err != nil {
		return
	}

	for _, cb := range callbacks {
		cb(cfg)
	}
}
