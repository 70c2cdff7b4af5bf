// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/spyglass/spyglass/internal/config/data"
)

// NewLogger builds the application logger. Unknown levels fall back to info.
func NewLogger(cfg data.Logger, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if cfg.Format == data.LogFormatConsole {
		out = zerolog.ConsoleWriter{Out: out, NoColor: true}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// OpenLogFile opens path for appending, creating its directory.
func OpenLogFile(path string) (*os.File, error) {
	if err := data.EnsureFullPath(path, 0o700); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return f, nil
}
