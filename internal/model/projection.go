// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package model

import (
	"sort"
	"strings"

	"github.com/spyglass/spyglass/internal/model1"
	"github.com/spyglass/spyglass/internal/render"
	"github.com/spyglass/spyglass/internal/table"
)

// ColNamespace is added when listing across namespaces.
const ColNamespace = "Namespace"

type origin int

const (
	fromBackend origin = iota
	fromName
	fromNamespace
	fromAge
)

type projected struct {
	col   model1.HeaderColumn
	from  origin
	index int
}

// Project applies a resolved configuration to a raw backend table. Name and
// Namespace lead, ordered columns follow, then the remaining backend columns
// and finally Age.
func Project(raw *model1.Table, cfg table.Config, fallback render.Func, allNamespaces bool) (model1.Header, model1.Rows) {
	if raw == nil {
		return model1.Header{}, model1.Rows{}
	}
	nameIdx := -1
	for i, c := range raw.Columns {
		if strings.EqualFold(c.Name, table.ColName) {
			nameIdx = i
			break
		}
	}

	var lead, middle, trail []projected
	add := func(dst *[]projected, name, typ string, from origin, index int, time bool) {
		if cfg.Hidden(name) {
			return
		}
		*dst = append(*dst, projected{
			col: model1.HeaderColumn{
				Name: name,
				Type: typ,
				Attrs: model1.Attrs{
					Time:      time,
					Synthetic: from != fromBackend,
					Render:    cfg.RenderFor(name, fallback),
				},
			},
			from:  from,
			index: index,
		})
	}

	if cfg.ShowName {
		add(&lead, table.ColName, "string", fromName, nameIdx, false)
	}
	if allNamespaces && hasNamespaces(raw.Rows) {
		add(&lead, ColNamespace, "string", fromNamespace, -1, false)
	}
	for i, c := range raw.Columns {
		if strings.EqualFold(c.Name, table.ColName) || strings.EqualFold(c.Name, table.ColAge) {
			continue
		}
		add(&middle, c.Name, c.Type, fromBackend, i, false)
	}
	if cfg.ShowAge {
		add(&trail, table.ColAge, "integer", fromAge, -1, true)
	}

	cols := append(lead, reorder(middle, cfg.ColumnOrder)...)
	cols = append(cols, trail...)

	h := make(model1.Header, 0, len(cols))
	for _, c := range cols {
		h = append(h, c.col)
	}
	rows := make(model1.Rows, 0, len(raw.Rows))
	for _, r := range raw.Rows {
		rows = append(rows, projectRow(r, cols))
	}

	return h, rows
}

func projectRow(r model1.Row, cols []projected) model1.Row {
	out := model1.Row{ID: r.ID, Meta: r.Meta, Cells: make([]any, len(cols))}
	for i, c := range cols {
		switch c.from {
		case fromName:
			if r.Meta.Name != "" {
				out.Cells[i] = r.Meta.Name
			} else {
				out.Cells[i] = r.Cell(c.index)
			}
		case fromNamespace:
			out.Cells[i] = r.Meta.Namespace
		case fromAge:
			if !r.Meta.Created.IsZero() {
				out.Cells[i] = r.Meta.Created.Unix()
			}
		default:
			out.Cells[i] = r.Cell(c.index)
		}
	}
	if out.ID == "" {
		out.ID = r.Meta.FQN()
	}

	return out
}

// reorder moves the named columns first, in order, keeping the rest stable.
func reorder(cols []projected, order []string) []projected {
	if len(order) == 0 {
		return cols
	}
	out := make([]projected, 0, len(cols))
	taken := make(map[int]bool, len(order))
	for _, name := range order {
		for i, c := range cols {
			if !taken[i] && c.col.Name == name {
				out = append(out, c)
				taken[i] = true
				break
			}
		}
	}
	for i, c := range cols {
		if !taken[i] {
			out = append(out, c)
		}
	}

	return out
}

func hasNamespaces(rr model1.Rows) bool {
	for _, r := range rr {
		if r.Meta.Namespace != "" {
			return true
		}
	}
	return false
}

// Filter keeps the rows matching q on any column's filter key.
func Filter(h model1.Header, rows model1.Rows, q string) model1.Rows {
	if strings.TrimSpace(q) == "" {
		return rows
	}
	out := make(model1.Rows, 0, len(rows))
	for _, r := range rows {
		if model1.Matches(h, r, q) {
			out = append(out, r)
		}
	}

	return out
}

// Sort orders rows by the given columns using their sort keys. Unknown
// columns are ignored and ties keep the backend order.
func Sort(h model1.Header, rows model1.Rows, order table.Ordering) {
	type key struct {
		col  int
		desc bool
	}
	kk := make([]key, 0, len(order))
	for _, o := range order {
		if i, ok := h.IndexOf(o.Column); ok {
			kk = append(kk, key{col: i, desc: o.Descending})
		}
	}
	if len(kk) == 0 {
		return
	}

	sortKeys := make([][]string, len(rows))
	for i, r := range rows {
		sortKeys[i] = make([]string, len(kk))
		for j, k := range kk {
			sortKeys[i][j] = model1.SortKey(h[k.col].Render, r.Cell(k.col), r)
		}
	}
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := sortKeys[idx[a]], sortKeys[idx[b]]
		for j, k := range kk {
			if ka[j] == kb[j] {
				continue
			}
			less := model1.Less("", "", ka[j], kb[j])
			if k.desc {
				return !less
			}
			return less
		}
		return false
	})

	sorted := make(model1.Rows, len(rows))
	for i, j := range idx {
		sorted[i] = rows[j]
	}
	copy(rows, sorted)
}
