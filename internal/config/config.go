// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package config loads the spyglass settings, the table overrides and the
// resource aliases from the user's config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spyglass/spyglass/internal/config/data"
)

// ErrNoConfigFile is returned when a config file is required but missing.
var ErrNoConfigFile = errors.New("config file does not exist")

// Config is the root configuration document.
type Config struct {
	Spyglass *Spyglass `yaml:"spyglass"`

	mx sync.RWMutex
}

// NewConfig returns a configuration with defaults.
func NewConfig() *Config {
	return &Config{Spyglass: NewSpyglass()}
}

// Load reads path. A missing file keeps the current settings unless force is
// set.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if !force {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrNoConfigFile, path)
	}
	if err := data.LoadYAML(path, c); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.Spyglass == nil {
		c.Spyglass = NewSpyglass()
	}
	c.Spyglass.Validate()

	return nil
}

// Save writes the configuration to path. Unless force is set an absent file
// is left absent.
func (c *Config) Save(path string, force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if path == "" {
		return fmt.Errorf("no config file path configured")
	}
	if _, err := os.Stat(path); err != nil && !force {
		return nil
	}
	if err := data.SaveYAML(path, c); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	return nil
}

// Refine applies the CLI flags on top of the loaded settings and validates
// the result. Precedence is flag, then config file, then default.
func (c *Config) Refine(flags *data.Flags) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Spyglass == nil {
		return fmt.Errorf("config.Spyglass is nil")
	}
	c.Spyglass.Override(flags)
	c.Spyglass.Validate()
	if _, err := c.Spyglass.GetAPITimeout(); err != nil {
		return err
	}

	return nil
}
