// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	menuIndexFmt = " [%s::b]<%d>[-::-] %s "
	menuPlainFmt = " [%s::b]<%s>[-::-] %s "
	maxRows      = 6
)

// Menu presents the key hints of the top component.
type Menu struct {
	*tview.Table

	skin Skin
}

// NewMenu returns a new menu.
func NewMenu(skin Skin) *Menu {
	m := Menu{
		Table: tview.NewTable(),
		skin:  skin,
	}
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetBorderPadding(0, 0, 1, 1)

	return &m
}

// HydrateMenu lays out visible hints in columns of maxRows.
func (m *Menu) HydrateMenu(hh MenuHints) {
	m.Clear()
	hh = append(MenuHints(nil), hh...)
	sort.Sort(hh)

	var row, col int
	for _, h := range hh {
		if !h.Visible || h.IsBlank() {
			continue
		}
		c := tview.NewTableCell(m.formatMenu(h))
		c.SetBackgroundColor(tcell.ColorDefault)
		m.SetCell(row, col, c)
		row++
		if row >= maxRows {
			row, col = 0, col+1
		}
	}
}

func (m *Menu) formatMenu(h MenuHint) string {
	if h.Mnemonic == "" || h.Description == "" {
		return ""
	}
	key := ColorTag(m.skin.Key)
	if i, err := strconv.Atoi(h.Mnemonic); err == nil {
		return fmt.Sprintf(menuIndexFmt, key, i, h.Description)
	}

	return fmt.Sprintf(menuPlainFmt, key, tview.Escape(h.Mnemonic), h.Description)
}

// StackPushed notifies a component was added.
func (*Menu) StackPushed(Component) {}

// StackPopped notifies a component was removed.
func (m *Menu) StackPopped(_, top Component) {
	if top == nil {
		m.Clear()
	}
}

// StackTop notifies the top component.
func (m *Menu) StackTop(t Component) {
	if h, ok := t.(Hinter); ok {
		m.HydrateMenu(h.Hints())
	}
}
