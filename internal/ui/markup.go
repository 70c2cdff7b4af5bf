// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"strings"

	"github.com/derailed/tview"

	"github.com/spyglass/spyglass/internal/render"
)

// DefaultCellWidth caps truncating cells.
const DefaultCellWidth = 48

const ellipsis = "…"

// Markup turns display values into tview color tagged text.
type Markup struct {
	skin  Skin
	width int
}

// NewMarkup returns a markup writer. A non positive width uses the default.
func NewMarkup(skin Skin, width int) Markup {
	if width <= 0 {
		width = DefaultCellWidth
	}
	return Markup{skin: skin, width: width}
}

// Cell renders v. Plain text is escaped as is. Badges are bold and colored by
// severity, label pills are space separated and truncating containers are
// cut to the cell width.
func (m Markup) Cell(v render.Value) string {
	if !v.IsStructured() {
		return tview.Escape(v.String())
	}
	n := v.Node()
	w := tagWriter{left: -1}
	if n.HasClass(render.ClassTruncate) {
		w.left = m.width
	}
	m.walk(&w, n, "")

	return w.String()
}

func (m Markup) walk(w *tagWriter, n *render.Node, tag string) {
	pill := n.HasClass(render.ClassPill)
	if sev, ok := n.ClassWithPrefix(render.ClassBackground); ok {
		if pill {
			tag = "[" + ColorTag(m.skin.Pill) + "::]"
		} else {
			tag = "[" + ColorTag(m.skin.Badge(render.Severity(sev))) + "::b]"
		}
	}
	if pill && w.wrote {
		w.write(" ", "")
	}
	w.write(n.Text, tag)
	for _, c := range n.Children {
		m.walk(w, c, tag)
	}
}

// tagWriter accumulates tagged fragments within a rune budget. A negative
// budget is unlimited.
type tagWriter struct {
	b     strings.Builder
	left  int
	wrote bool
	cut   bool
}

func (w *tagWriter) write(s, tag string) {
	if s == "" || w.cut {
		return
	}
	if w.left >= 0 {
		rr := []rune(s)
		if len(rr) > w.left {
			s, w.cut = string(rr[:max(w.left-1, 0)])+ellipsis, true
			w.left = 0
		} else {
			w.left -= len(rr)
		}
	}
	if tag == "" {
		w.b.WriteString(tview.Escape(s))
	} else {
		w.b.WriteString(tag + tview.Escape(s) + "[-::-]")
	}
	w.wrote = true
}

func (w *tagWriter) String() string {
	return w.b.String()
}
