// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package model1

import (
	"fmt"

	"github.com/spyglass/spyglass/internal/render"
)

// Attrs represents column attributes.
type Attrs struct {
	Align     int  // tview alignment
	Time      bool // Age column
	Synthetic bool // Not sent by the backend
	Render    render.Func
}

// Merge fills unset attributes from b.
func (a Attrs) Merge(b Attrs) Attrs {
	if a.Align == 0 {
		a.Align = b.Align
	}
	if !a.Time {
		a.Time = b.Time
	}
	if !a.Synthetic {
		a.Synthetic = b.Synthetic
	}
	if a.Render == nil {
		a.Render = b.Render
	}
	return a
}

// HeaderColumn represents a table header column.
type HeaderColumn struct {
	Name string
	Type string
	Attrs
}

func (h HeaderColumn) String() string {
	return fmt.Sprintf("%s [%s::%d::%t]", h.Name, h.Type, h.Align, h.Time)
}

// Header represents a table header (slice of columns).
type Header []HeaderColumn

// Clone returns a copy of the header.
func (h Header) Clone() Header {
	he := make(Header, len(h))
	copy(he, h)
	return he
}

// Diff returns true if column names or types changed.
func (h Header) Diff(header Header) bool {
	if len(h) != len(header) {
		return true
	}
	for i := range h {
		if h[i].Name != header[i].Name || h[i].Type != header[i].Type {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the named column.
func (h Header) IndexOf(colName string) (int, bool) {
	for i, c := range h {
		if c.Name == colName {
			return i, true
		}
	}
	return -1, false
}

// AgeCol returns the index of the time column or -1.
func (h Header) AgeCol() int {
	for i, c := range h {
		if c.Time {
			return i
		}
	}
	return -1
}

// HasAge returns true if a time column is present.
func (h Header) HasAge() bool {
	return h.AgeCol() >= 0
}

// IsTimeCol returns true if col is a time column.
func (h Header) IsTimeCol(col int) bool {
	if col < 0 || col >= len(h) {
		return false
	}
	return h[col].Time
}

// ColumnNames returns the column names in order.
func (h Header) ColumnNames() []string {
	if len(h) == 0 {
		return nil
	}
	cc := make([]string, 0, len(h))
	for _, c := range h {
		cc = append(cc, c.Name)
	}
	return cc
}

// RenderAt returns the renderer for column i, falling back to fallback.
func (h Header) RenderAt(i int, fallback render.Func) render.Func {
	if i < 0 || i >= len(h) || h[i].Render == nil {
		return fallback
	}
	return h[i].Render
}
