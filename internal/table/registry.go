// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package table

import (
	"slices"
	"sort"

	"github.com/spyglass/spyglass/internal/render"
	"github.com/spyglass/spyglass/internal/resource"
)

// Wildcard is the registry key applying to every resource.
const Wildcard = "*"

// Config is a fully resolved table configuration.
type Config struct {
	HiddenColumns []string
	ColumnOrder   []string
	ShowName      bool
	ShowAge       bool
	DefaultOrder  Ordering
	Render        map[string]render.Func
}

// Hidden returns true if the column is hidden.
func (c Config) Hidden(col string) bool {
	return slices.Contains(c.HiddenColumns, col)
}

// Visible returns true if the column is not hidden.
func (c Config) Visible(col string) bool {
	return !c.Hidden(col)
}

// RenderFor returns the column renderer or fallback.
func (c Config) RenderFor(col string, fallback render.Func) render.Func {
	if fn, ok := c.Render[col]; ok && fn != nil {
		return fn
	}
	return fallback
}

// Rendered lists the columns with a custom renderer.
func (c Config) Rendered() []string {
	cc := make([]string, 0, len(c.Render))
	for k := range c.Render {
		cc = append(cc, k)
	}
	sort.Strings(cc)
	return cc
}

func resolve(o Override) Config {
	c := Config{
		HiddenColumns: []string{},
		ColumnOrder:   []string{},
		ShowName:      true,
		ShowAge:       true,
		DefaultOrder:  Ordering{},
		Render:        map[string]render.Func{},
	}
	c.HiddenColumns = append(c.HiddenColumns, o.HiddenColumns...)
	c.ColumnOrder = append(c.ColumnOrder, o.ColumnOrder...)
	if o.ShowName != nil {
		c.ShowName = *o.ShowName
	}
	if o.ShowAge != nil {
		c.ShowAge = *o.ShowAge
	}
	c.DefaultOrder = append(c.DefaultOrder, o.DefaultOrder...)
	for k, v := range o.Render {
		c.Render[k] = v
	}

	return c
}

// Registry maps resource keys to overrides. It is immutable.
type Registry struct {
	overrides map[string]Override
}

// NewRegistry copies mm into a registry. Keys are Wildcard or resource key
// strings.
func NewRegistry(mm map[string]Override) *Registry {
	r := Registry{overrides: make(map[string]Override, len(mm))}
	for k, o := range mm {
		r.overrides[k] = Merge(o)
	}

	return &r
}

// Keys returns the registered keys, sorted.
func (r *Registry) Keys() []string {
	kk := make([]string, 0, len(r.overrides))
	for k := range r.overrides {
		kk = append(kk, k)
	}
	sort.Strings(kk)
	return kk
}

// Get returns the raw override stored under key.
func (r *Registry) Get(key string) (Override, bool) {
	o, ok := r.overrides[key]
	return o, ok
}

// Resolve merges the wildcard override with the one for key and fills in
// defaults. Unregistered keys resolve to the wildcard configuration.
func (r *Registry) Resolve(key resource.Key) Config {
	return resolve(Merge(r.overrides[Wildcard], r.overrides[key.String()]))
}

// Layer stacks other on top of r. For each key the result merges r's
// override first, then other's.
func (r *Registry) Layer(other *Registry) *Registry {
	if other == nil {
		return r
	}
	out := Registry{overrides: make(map[string]Override, len(r.overrides)+len(other.overrides))}
	for k, o := range r.overrides {
		out.overrides[k] = o
	}
	for k, o := range other.overrides {
		out.overrides[k] = Merge(out.overrides[k], o)
	}

	return &out
}
