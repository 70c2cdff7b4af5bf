// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package config

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/spyglass/spyglass/internal/render"
	"github.com/spyglass/spyglass/internal/resource"
	"github.com/spyglass/spyglass/internal/table"
)

// ReloadRecorder observes override reloads.
type ReloadRecorder interface {
	ConfigReloaded(err error)
}

// HolderOption configures a Holder.
type HolderOption func(*Holder)

// WithHolderLogger sets the holder logger.
func WithHolderLogger(l zerolog.Logger) HolderOption {
	return func(h *Holder) {
		h.logger = l
	}
}

// WithReloadRecorder records reload outcomes.
func WithReloadRecorder(r ReloadRecorder) HolderOption {
	return func(h *Holder) {
		h.recorder = r
	}
}

// Holder serves the active override registry: the built-in overrides layered
// with the user's overrides file. The registry is swapped whole on reload.
type Holder struct {
	mx       sync.RWMutex
	builtin  *table.Registry
	registry *table.Registry
	path     string
	lib      *render.Library
	logger   zerolog.Logger
	recorder ReloadRecorder
	watcher  *fsnotify.Watcher
	onChange []func(*table.Registry)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHolder loads the overrides at path. An empty path serves the built-in
// overrides only.
func NewHolder(path string, lib *render.Library, opts ...HolderOption) (*Holder, error) {
	h := Holder{
		builtin: table.Builtin(lib),
		lib:     lib,
		logger:  zerolog.Nop(),
		stopCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(&h)
	}
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("absolute path: %w", err)
		}
		h.path = abs
	}

	reg, err := h.load()
	if err != nil {
		return nil, err
	}
	h.registry = reg

	return &h, nil
}

func (h *Holder) load() (*table.Registry, error) {
	if h.path == "" {
		return h.builtin, nil
	}
	user, err := LoadOverrides(h.path, h.lib)
	if err != nil {
		return nil, err
	}

	return h.builtin.Layer(user), nil
}

// Path returns the watched overrides file.
func (h *Holder) Path() string {
	return h.path
}

// Registry returns the active registry.
func (h *Holder) Registry() *table.Registry {
	h.mx.RLock()
	defer h.mx.RUnlock()

	return h.registry
}

// Resolve resolves key against the active registry.
func (h *Holder) Resolve(key resource.Key) table.Config {
	return h.Registry().Resolve(key)
}

// OnChange registers a callback run after each successful reload.
func (h *Holder) OnChange(fn func(*table.Registry)) {
	h.mx.Lock()
	defer h.mx.Unlock()

	h.onChange = append(h.onChange, fn)
}

// Reload rereads the overrides file. On failure the previous registry stays
// active.
func (h *Holder) Reload() error {
	h.logger.Info().Str("path", h.path).Msg("Reloading overrides")

	reg, err := h.load()
	if h.recorder != nil {
		h.recorder.ConfigReloaded(err)
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Overrides reload failed, keeping previous")
		return fmt.Errorf("reload overrides: %w", err)
	}

	h.mx.Lock()
	old := h.registry
	h.registry = reg
	fns := append(([]func(*table.Registry))(nil), h.onChange...)
	h.mx.Unlock()

	h.logger.Info().
		Int("old", len(old.Keys())).
		Int("new", len(reg.Keys())).
		Msg("Overrides reloaded")
	for _, fn := range fns {
		fn(reg)
	}

	return nil
}

// WatchFile reloads whenever the overrides file is written or recreated.
func (h *Holder) WatchFile() error {
	if h.path == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Editors save atomically, so watch the directory.
	if err := w.Add(filepath.Dir(h.path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	h.mx.Lock()
	h.watcher = w
	h.mx.Unlock()

	go h.watchLoop(w)
	h.logger.Debug().Str("path", h.path).Msg("Watching overrides")

	return nil
}

// WatchSignals reloads on SIGHUP.
func (h *Holder) WatchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)

	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-sigCh:
				h.logger.Info().Msg("Received SIGHUP")
				_ = h.Reload()
			case <-h.stopCh:
				return
			}
		}
	}()
}

// Stop ends file and signal watching.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		h.mx.Lock()
		defer h.mx.Unlock()
		if h.watcher != nil {
			_ = h.watcher.Close()
		}
	})
}

func (h *Holder) watchLoop(w *fsnotify.Watcher) {
	name := filepath.Base(h.path)
	for {
		select {
		case evt, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(evt.Name) != name {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			h.logger.Debug().Str("event", evt.Op.String()).Msg("Overrides changed")
			_ = h.Reload()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("Overrides watcher failed")
		case <-h.stopCh:
			return
		}
	}
}
