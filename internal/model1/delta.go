// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package model1

import (
	"fmt"
	"slices"
)

// DeltaRow holds the previous value of each changed cell.
type DeltaRow []string

// NewDeltaRow compares two versions of a row, skipping time columns.
func NewDeltaRow(o, n Row, h Header) DeltaRow {
	deltas := make(DeltaRow, len(o.Cells))
	for i, old := range o.Cells {
		if i >= len(n.Cells) || h.IsTimeCol(i) {
			continue
		}
		ov := fmt.Sprint(old)
		if ov != "" && ov != fmt.Sprint(n.Cells[i]) {
			deltas[i] = ov
		}
	}
	return deltas
}

// Diff returns true if the deltas differ outside the age column.
func (d DeltaRow) Diff(r DeltaRow, ageCol int) bool {
	if len(d) != len(r) {
		return true
	}
	if ageCol < 0 || ageCol >= len(d) {
		return !slices.Equal(d, r)
	}
	if !slices.Equal(d[:ageCol], r[:ageCol]) {
		return true
	}
	return !slices.Equal(d[ageCol+1:], r[ageCol+1:])
}

// Customize picks deltas by index into out.
func (d DeltaRow) Customize(cols []int, out DeltaRow) {
	if d.IsBlank() {
		return
	}
	for i, c := range cols {
		if c < 0 {
			continue
		}
		if c < len(d) && i < len(out) {
			out[i] = d[c]
		}
	}
}

// IsBlank returns true if nothing changed.
func (d DeltaRow) IsBlank() bool {
	for _, v := range d {
		if v != "" {
			return false
		}
	}
	return true
}

// Clone returns a copy.
func (d DeltaRow) Clone() DeltaRow {
	return slices.Clone(d)
}
