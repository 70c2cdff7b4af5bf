// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spyglass/spyglass/internal/config/data"
)

// Defaults.
const (
	DefaultAPITimeout = 30 * time.Second
	DefaultLanguage   = "en"
)

// AllNamespaces is the namespace flag value selecting every namespace.
const AllNamespaces = "all"

// Spyglass represents the global configuration.
type Spyglass struct {
	RefreshRate   float32     `yaml:"refreshRate"`
	APITimeout    string      `yaml:"apiTimeout"`
	BackendURL    string      `yaml:"backendURL"`
	KubeContext   string      `yaml:"kubeContext"`
	Namespace     string      `yaml:"namespace"`
	Language      string      `yaml:"language"`
	OverridesFile string      `yaml:"overridesFile,omitempty"`
	MetricsAddr   string      `yaml:"metricsAddr,omitempty"`
	UI            data.UI     `yaml:"ui"`
	Logger        data.Logger `yaml:"logger"`

	mx sync.RWMutex
}

// NewSpyglass returns a configuration with defaults.
func NewSpyglass() *Spyglass {
	return &Spyglass{
		RefreshRate: DefaultRefreshRate,
		APITimeout:  DefaultAPITimeout.String(),
		UI:          data.UI{Theme: data.ThemeAuto},
		Logger: data.Logger{
			Level:  data.DefaultLogLevel,
			Format: data.DefaultLogFormat,
		},
	}
}

// Validate replaces invalid or missing settings with defaults.
func (s *Spyglass) Validate() {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.RefreshRate <= 0 {
		s.RefreshRate = DefaultRefreshRate
	}
	if _, err := time.ParseDuration(s.APITimeout); err != nil {
		s.APITimeout = DefaultAPITimeout.String()
	}
	switch s.UI.Theme {
	case data.ThemeAuto, data.ThemeLight, data.ThemeDark:
	default:
		s.UI.Theme = data.ThemeAuto
	}
	if s.Logger.Level == "" {
		s.Logger.Level = data.DefaultLogLevel
	}
	switch s.Logger.Format {
	case data.LogFormatJSON, data.LogFormatConsole:
	default:
		s.Logger.Format = data.DefaultLogFormat
	}
}

// Override applies the CLI flags that were set.
func (s *Spyglass) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	if flags.RefreshRate != nil && *flags.RefreshRate > 0 {
		s.RefreshRate = *flags.RefreshRate
	}
	override(&s.BackendURL, flags.Backend)
	override(&s.KubeContext, flags.KubeContext)
	if IsStringSet(flags.Namespace) {
		s.Namespace = *flags.Namespace
		if s.Namespace == AllNamespaces {
			s.Namespace = ""
		}
	}
	override(&s.Language, flags.Language)
	override(&s.UI.Theme, flags.Theme)
	override(&s.Logger.Level, flags.LogLevel)
	override(&s.Logger.File, flags.LogFile)
	override(&s.OverridesFile, flags.Overrides)
	override(&s.MetricsAddr, flags.MetricsAddr)
}

func override(dst *string, flag *string) {
	if IsStringSet(flag) {
		*dst = *flag
	}
}

// RefreshInterval returns the refresh rate as a duration.
func (s *Spyglass) RefreshInterval() time.Duration {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return time.Duration(float64(s.RefreshRate) * float64(time.Second))
}

// GetAPITimeout returns the parsed API timeout.
func (s *Spyglass) GetAPITimeout() (time.Duration, error) {
	s.mx.RLock()
	raw := s.APITimeout
	s.mx.RUnlock()

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid API timeout %q: %w", raw, err)
	}

	return d, nil
}

// ActiveLanguage returns the configured language or the default.
func (s *Spyglass) ActiveLanguage() string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	if s.Language == "" {
		return DefaultLanguage
	}
	return s.Language
}
