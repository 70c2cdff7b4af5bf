// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package model1

import "fmt"

// Row represents a collection of cells.
type Row struct {
	ID    string
	Meta  Meta
	Cells []any
}

// NewRow returns a row with size empty cells.
func NewRow(size int) Row {
	return Row{Cells: make([]any, size)}
}

// Customize picks cells by index. Negative indexes yield empty cells.
func (r Row) Customize(cols []int) Row {
	out := NewRow(len(cols))
	for i, c := range cols {
		if c >= 0 && c < len(r.Cells) {
			out.Cells[i] = r.Cells[c]
		}
	}
	out.ID, out.Meta = r.ID, r.Meta
	return out
}

// Cell returns the cell at i, or nil when out of range.
func (r Row) Cell(i int) any {
	if i < 0 || i >= len(r.Cells) {
		return nil
	}
	return r.Cells[i]
}

// Diff returns true if the rows differ, ignoring the age column.
func (r Row) Diff(ro Row, ageCol int) bool {
	if r.ID != ro.ID || len(r.Cells) != len(ro.Cells) {
		return true
	}
	for i := range r.Cells {
		if i == ageCol {
			continue
		}
		if fmt.Sprint(r.Cells[i]) != fmt.Sprint(ro.Cells[i]) {
			return true
		}
	}
	return false
}

// Clone returns a copy with its own cell slice.
func (r Row) Clone() Row {
	cc := make([]any, len(r.Cells))
	copy(cc, r.Cells)
	return Row{
		ID:    r.ID,
		Meta:  r.Meta,
		Cells: cc,
	}
}

// Len returns the number of cells.
func (r Row) Len() int {
	return len(r.Cells)
}

// Rows represents a collection of rows.
type Rows []Row

// Clone returns a deep copy.
func (r Rows) Clone() Rows {
	out := make(Rows, len(r))
	for i, row := range r {
		out[i] = row.Clone()
	}
	return out
}
