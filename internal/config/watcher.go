package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watcher re-reads the config file on change and notifies subscribers.
// Only hot-reloadable settings (log level and format) should be applied
// from callbacks; listener and pool settings need a restart.
type Watcher struct {
	viper     *viper.Viper
	current   *Config
	callbacks []func(*Config)
	mu        sync.RWMutex
	stopped   bool
}

// NewWatcher creates a watcher for the given config file.
func NewWatcher(cfg *Config, configPath string) *Watcher {
	v := viper.New()
	v.SetConfigFile(configPath)

	return &Watcher{
		viper:   v,
		current: cfg,
	}
}

// OnChange registers a callback invoked with the re-read config.
func (w *Watcher) OnChange(callback func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching. Returns an error when the file cannot be read.
func (w *Watcher) Start() error {
	if err := w.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	w.viper.WatchConfig()
	w.viper.OnConfigChange(func(fsnotify.Event) {
		w.mu.RLock()
		stopped := w.stopped
		w.mu.RUnlock()
		if stopped {
			return
		}

		var next Config
		if err := w.viper.Unmarshal(&next); err != nil {
			return
		}

		w.mu.Lock()
		w.current = &next
		callbacks := make([]func(*Config), len(w.callbacks))
		copy(callbacks, w.callbacks)
		w.mu.Unlock()

		for _, callback := range callbacks {
			callback(&next)
		}
	})

	return nil
}

// Stop disables further callbacks.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
}

// Current returns the most recently loaded config.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}
