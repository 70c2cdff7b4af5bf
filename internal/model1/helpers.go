// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package model1

import (
	"fmt"
	"strings"

	"github.com/fvbommel/sortorder"
	"github.com/spyglass/spyglass/internal/render"
)

// Less compares two sort keys naturally, breaking ties on row IDs.
func Less(id1, id2, v1, v2 string) bool {
	if v1 == v2 {
		return sortorder.NaturalLess(id1, id2)
	}
	return sortorder.NaturalLess(v1, v2)
}

// SortKey renders a cell in sort mode.
func SortKey(fn render.Func, raw any, row Row) string {
	if fn == nil {
		return keyString(raw)
	}
	return keyString(fn(raw, render.ModeSort, row))
}

// FilterKey renders a cell in filter mode.
func FilterKey(fn render.Func, raw any, row Row) string {
	if fn == nil {
		return keyString(raw)
	}
	return keyString(fn(raw, render.ModeFilter, row))
}

// Matches returns true if any cell's filter key contains q, ignoring case.
func Matches(h Header, row Row, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for i, c := range row.Cells {
		if strings.Contains(strings.ToLower(FilterKey(h.RenderAt(i, nil), c, row)), q) {
			return true
		}
	}
	return false
}

func keyString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case render.Value:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
