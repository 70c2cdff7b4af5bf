// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package view

import (
	"context"
	"sort"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/spyglass/spyglass/internal/config"
	"github.com/spyglass/spyglass/internal/resource"
	"github.com/spyglass/spyglass/internal/ui"
)

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection is a titled column of bindings.
type HelpSection struct {
	Title string
	Binds []HelpBind
}

// Help lists the key bindings and resource aliases.
type Help struct {
	*tview.Table

	skin     ui.Skin
	aliases  *config.Aliases
	sections []HelpSection
	closeFn  func()
}

// NewHelp creates a new help view.
func NewHelp(skin ui.Skin, aliases *config.Aliases) *Help {
	h := Help{
		Table:   tview.NewTable(),
		skin:    skin,
		aliases: aliases,
	}
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleColor(skin.Title)
	h.SetBorderColor(skin.Border)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)
	h.SetInputCapture(h.keyboard)

	return &h
}

// SetCloseFn sets the callback when help is closed.
func (h *Help) SetCloseFn(fn func()) {
	h.closeFn = fn
}

// Name returns the view name.
func (*Help) Name() string {
	return "help"
}

// Init builds the help tables.
func (h *Help) Init(context.Context) error {
	h.sections = h.build()
	h.populate()
	return nil
}

// Start implements ui.Igniter.
func (h *Help) Start() {
	if h.sections == nil {
		_ = h.Init(context.Background())
	}
}

// Stop implements ui.Igniter.
func (*Help) Stop() {}

// Hints returns menu hints.
func (*Help) Hints() ui.MenuHints {
	return ui.MenuHints{{Mnemonic: "esc", Description: "Close", Visible: true}}
}

// Sections returns the displayed sections.
func (h *Help) Sections() []HelpSection {
	return h.sections
}

func (h *Help) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	switch ui.AsKey(evt) {
	case tcell.KeyEsc, tcell.KeyEnter, ui.KeyQuestion, ui.KeyQ:
		if h.closeFn != nil {
			h.closeFn()
		}
		return nil
	}
	return evt
}

func (h *Help) build() []HelpSection {
	res := HelpSection{Title: "RESOURCES"}
	aa := make([]string, 0, len(resource.DefaultAliases))
	for a := range resource.DefaultAliases {
		aa = append(aa, a)
	}
	sort.Strings(aa)
	for _, a := range aa {
		res.Binds = append(res.Binds, HelpBind{Key: ":" + a, Desc: resource.DefaultAliases[a].Resource})
	}
	if h.aliases != nil {
		for _, a := range h.aliases.Names() {
			if k, ok := h.aliases.Resolve(a); ok {
				res.Binds = append(res.Binds, HelpBind{Key: ":" + a, Desc: k.Resource})
			}
		}
	}

	return []HelpSection{
		res,
		{
			Title: "GENERAL",
			Binds: []HelpBind{
				{"<:>", "Command"},
				{"</>", "Filter"},
				{"<?>", "Help"},
				{"<esc>", "Back"},
				{"<tab>", "Sidebar"},
				{"<ctrl-c>", "Quit"},
				{":ns <name>", "Namespace"},
				{":ctx", "Contexts"},
			},
		},
		{
			Title: "NAVIGATION",
			Binds: []HelpBind{
				{"<j>", "Down"},
				{"<k>", "Up"},
				{"<g>", "Top"},
				{"<G>", "Bottom"},
				{"<r>", "Reload"},
				{"<0>", "All namespaces"},
			},
		},
	}
}

func (h *Help) populate() {
	h.Clear()
	const colWidth = 3

	var rows int
	for i, s := range h.sections {
		base := i * colWidth
		h.SetCell(0, base, tview.NewTableCell(s.Title).
			SetTextColor(h.skin.Title).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
		for r, b := range s.Binds {
			h.SetCell(r+1, base, tview.NewTableCell(tview.Escape(b.Key)).
				SetTextColor(h.skin.Key).
				SetSelectable(false))
			h.SetCell(r+1, base+1, tview.NewTableCell(b.Desc).
				SetTextColor(h.skin.Fg).
				SetSelectable(false).
				SetExpansion(1))
		}
		rows = max(rows, len(s.Binds))
	}
	h.SetCell(rows+2, 0, tview.NewTableCell("<esc> to close").
		SetTextColor(h.skin.Dim).
		SetSelectable(false))
}
