// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package table

import (
	"github.com/spyglass/spyglass/internal/render"
	"github.com/spyglass/spyglass/internal/resource"
)

// Well known column names.
const (
	ColName     = "Name"
	ColAge      = "Age"
	ColStatus   = "Status"
	ColReady    = "Ready"
	ColSelector = "Selector"
)

// Builtin returns the stock overrides.
func Builtin(lib *render.Library) *Registry {
	return NewRegistry(map[string]Override{
		Wildcard: {
			Render: map[string]render.Func{
				ColSelector: lib.Selector(),
				ColAge:      lib.Age(),
			},
		},
		resource.Pods.String(): {
			HiddenColumns: []string{"Nominated Node", "Readiness Gates"},
			ColumnOrder:   []string{ColStatus, ColReady},
			Render: map[string]render.Func{
				ColStatus: lib.Status(),
			},
		},
	})
}
