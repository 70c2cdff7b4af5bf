// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package table resolves per resource display rules from layered overrides.
package table

import (
	"github.com/spyglass/spyglass/internal/render"
)

// Order sorts by one column.
type Order struct {
	Column     string `yaml:"column" json:"column"`
	Descending bool   `yaml:"descending" json:"descending"`
}

// Ordering is a multi column sort specification.
type Ordering []Order

// Override is a partial table configuration. HiddenColumns and ColumnOrder
// accumulate across layers, the pointer fields and DefaultOrder replace when
// set and Render merges by column name.
type Override struct {
	HiddenColumns []string
	ColumnOrder   []string
	ShowName      *bool
	ShowAge       *bool
	DefaultOrder  Ordering
	Render        map[string]render.Func
}

// IsZero returns true if the override sets nothing.
func (o Override) IsZero() bool {
	return len(o.HiddenColumns) == 0 &&
		len(o.ColumnOrder) == 0 &&
		o.ShowName == nil &&
		o.ShowAge == nil &&
		o.DefaultOrder == nil &&
		len(o.Render) == 0
}

// Merge folds overrides left to right. The zero override is the identity and
// inputs are never mutated.
func Merge(oo ...Override) Override {
	var out Override
	for _, o := range oo {
		out.HiddenColumns = concat(out.HiddenColumns, o.HiddenColumns)
		out.ColumnOrder = concat(out.ColumnOrder, o.ColumnOrder)
		if o.ShowName != nil {
			out.ShowName = boolPtr(*o.ShowName)
		}
		if o.ShowAge != nil {
			out.ShowAge = boolPtr(*o.ShowAge)
		}
		if o.DefaultOrder != nil {
			out.DefaultOrder = append(Ordering{}, o.DefaultOrder...)
		}
		if len(o.Render) > 0 {
			if out.Render == nil {
				out.Render = make(map[string]render.Func, len(o.Render))
			}
			for k, v := range o.Render {
				out.Render[k] = v
			}
		}
	}

	return out
}

func concat(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func boolPtr(b bool) *bool {
	return &b
}

// Bool returns a pointer to b, for building overrides.
func Bool(b bool) *bool {
	return boolPtr(b)
}
