// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/spyglass/spyglass/internal/render"
	"github.com/spyglass/spyglass/internal/resource"
	"github.com/spyglass/spyglass/internal/table"
)

// OverrideSpec is the on disk form of a table override. Renderers are named
// and resolved against a render library.
type OverrideSpec struct {
	HiddenColumns []string          `yaml:"hiddenColumns,omitempty"`
	ColumnOrder   []string          `yaml:"columnOrder,omitempty"`
	ShowName      *bool             `yaml:"showName,omitempty"`
	ShowAge       *bool             `yaml:"showAge,omitempty"`
	DefaultOrder  table.Ordering    `yaml:"defaultOrder,omitempty"`
	Render        map[string]string `yaml:"render,omitempty"`
}

// OverridesFile is the overrides document. Keys are "*", resource key
// strings such as "apps/v1::deployments" or taxonomy names and aliases.
type OverridesFile struct {
	Overrides map[string]OverrideSpec `yaml:"overrides"`
}

// LoadOverrides reads the overrides file at path. A missing file yields an
// empty registry.
func LoadOverrides(path string, lib *render.Library) (*table.Registry, error) {
	bb, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return table.NewRegistry(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}

	return ParseOverrides(bb, lib)
}

// ParseOverrides decodes an overrides document.
func ParseOverrides(bb []byte, lib *render.Library) (*table.Registry, error) {
	var f OverridesFile
	if err := yaml.Unmarshal(bb, &f); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}

	names := make([]string, 0, len(f.Overrides))
	for k := range f.Overrides {
		names = append(names, k)
	}
	sort.Strings(names)

	mm := make(map[string]table.Override, len(names))
	for _, name := range names {
		key, err := overrideKey(name)
		if err != nil {
			return nil, err
		}
		o, err := f.Overrides[name].toOverride(lib)
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", name, err)
		}
		mm[key] = table.Merge(mm[key], o)
	}

	return table.NewRegistry(mm), nil
}

func overrideKey(name string) (string, error) {
	if name == table.Wildcard {
		return name, nil
	}
	if k, err := resource.ParseKey(name); err == nil {
		return k.String(), nil
	}
	if k, ok := resource.DefaultTaxonomy.Lookup(name); ok {
		return k.String(), nil
	}

	return "", fmt.Errorf("override %q: %w", name, resource.ErrInvalidKey)
}

func (s OverrideSpec) toOverride(lib *render.Library) (table.Override, error) {
	o := table.Override{
		HiddenColumns: s.HiddenColumns,
		ColumnOrder:   s.ColumnOrder,
		ShowName:      s.ShowName,
		ShowAge:       s.ShowAge,
		DefaultOrder:  s.DefaultOrder,
	}
	for _, ord := range s.DefaultOrder {
		if ord.Column == "" {
			return table.Override{}, errors.New("defaultOrder entry without column")
		}
	}
	if len(s.Render) > 0 {
		o.Render = make(map[string]render.Func, len(s.Render))
		for col, name := range s.Render {
			fn, err := lib.Named(name)
			if err != nil {
				return table.Override{}, fmt.Errorf("column %q: %w", col, err)
			}
			o.Render[col] = fn
		}
	}

	return o, nil
}
