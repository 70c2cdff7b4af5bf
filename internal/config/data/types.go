// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package data holds the configuration shapes shared by the config package
// and its callers.
package data

// Flags represents the spyglass command line flags. A nil or zero value
// leaves the configured setting untouched.
type Flags struct {
	RefreshRate *float32 // Refresh rate in seconds
	Backend     *string  // Dashboard backend base url
	KubeContext *string  // Kubernetes context to browse
	Namespace   *string  // Namespace, empty for all
	Language    *string  // UI language tag
	Theme       *string  // auto, light or dark
	LogLevel    *string  // debug, info, warn, error
	LogFile     *string  // Path to log file
	Overrides   *string  // Path to the table overrides file
	MetricsAddr *string  // Listen address of the debug server
}

// Theme names.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UI represents user interface settings.
type UI struct {
	Theme       string `yaml:"theme"`
	EnableMouse bool   `yaml:"enableMouse"`
	Crumbsless  bool   `yaml:"crumbsless"`
}

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Logger represents logging settings.
type Logger struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Format string `yaml:"format"`
}

// Logger defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = LogFormatJSON
)

// NewFlags returns flags with every pointer allocated and unset.
func NewFlags() *Flags {
	return &Flags{
		RefreshRate: new(float32),
		Backend:     new(string),
		KubeContext: new(string),
		Namespace:   new(string),
		Language:    new(string),
		Theme:       new(string),
		LogLevel:    new(string),
		LogFile:     new(string),
		Overrides:   new(string),
		MetricsAddr: new(string),
	}
}
