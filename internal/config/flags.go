// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package config

import (
	"github.com/spyglass/spyglass/internal/config/data"
)

// DefaultRefreshRate is the default refresh interval in seconds.
const DefaultRefreshRate = 5.0

// NewFlags returns unset CLI flags. Zero values defer to the config file.
func NewFlags() *data.Flags {
	return data.NewFlags()
}

// IsStringSet returns true if a string pointer is non-nil and non-empty.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}
