// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package view

import (
	"context"
	"fmt"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/spyglass/spyglass/internal/render"
	"github.com/spyglass/spyglass/internal/ui"
)

const contextTitle = "contexts"

// ContextSwitcher lists kube contexts and switches to the selected one.
type ContextSwitcher struct {
	*tview.Table

	app      *App
	actions  *ui.KeyActions
	contexts []string
}

// NewContextSwitcher returns a context picker.
func NewContextSwitcher(app *App) *ContextSwitcher {
	v := ContextSwitcher{
		Table:   tview.NewTable(),
		app:     app,
		actions: ui.NewKeyActions(),
	}

	skin := app.Skin()
	v.SetBorder(true)
	v.SetTitle(" Contexts ")
	v.SetTitleColor(skin.Title)
	v.SetBorderColor(skin.Border)
	v.SetBackgroundColor(tcell.ColorDefault)
	v.SetSelectable(true, false)
	v.SetFixed(1, 0)

	return &v
}

// Init binds keys.
func (v *ContextSwitcher) Init(context.Context) error {
	v.actions.Bulk(ui.KeyMap{
		tcell.KeyEnter: ui.NewKeyAction("Switch", v.switchCmd, true),
		tcell.KeyEsc:   ui.NewKeyAction("Back", nil, true),
	})
	v.SetInputCapture(v.keyboard)
	v.showMessage("Loading...")

	return nil
}

// Start loads the contexts in the background.
func (v *ContextSwitcher) Start() {
	go func() {
		ctx, cancel := context.WithTimeout(v.app.Context(), v.timeout())
		defer cancel()
		v.load(ctx)
	}()
}

// Stop implements ui.Igniter.
func (*ContextSwitcher) Stop() {}

// Name returns the view name.
func (*ContextSwitcher) Name() string {
	return contextTitle
}

// Hints returns menu hints.
func (v *ContextSwitcher) Hints() ui.MenuHints {
	return v.actions.Hints()
}

// Contexts returns the listed contexts.
func (v *ContextSwitcher) Contexts() []string {
	return v.contexts
}

func (v *ContextSwitcher) timeout() time.Duration {
	d, err := v.app.deps.Config.Spyglass.GetAPITimeout()
	if err != nil {
		return 30 * time.Second
	}
	return d
}

func (v *ContextSwitcher) load(ctx context.Context) {
	cc, err := v.app.deps.Contexts.GetContexts(ctx)
	v.app.QueueUpdateDraw(func() {
		if err != nil {
			v.showMessage(err.Error())
			v.app.Flash().Err(err)
			return
		}
		v.render(cc)
	})
}

func (v *ContextSwitcher) render(cc []string) {
	v.Clear()
	skin := v.app.Skin()
	current := v.app.KubeContext()

	for col, h := range []string{"", "NAME"} {
		v.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(skin.Header).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(col))
	}
	if len(cc) == 0 {
		v.contexts = nil
		v.showMessage("No contexts found")
		return
	}

	sel := 1
	for i, name := range cc {
		row, mark, color := i+1, "", skin.Fg
		if name == current {
			mark, color, sel = "*", skin.Badge(render.SeveritySuccess), row
		}
		v.SetCell(row, 0, tview.NewTableCell(mark).SetTextColor(color))
		v.SetCell(row, 1, tview.NewTableCell(tview.Escape(name)).
			SetTextColor(color).
			SetExpansion(1).
			SetReference(name))
	}
	v.SetTitle(fmt.Sprintf(" Contexts[%d] ", len(cc)))
	v.Select(sel, 0)
	v.contexts = cc
}

func (v *ContextSwitcher) showMessage(msg string) {
	v.SetCell(1, 1, tview.NewTableCell(tview.Escape(msg)).
		SetTextColor(v.app.Skin().Dim).
		SetSelectable(false))
}

// Selected returns the selected context.
func (v *ContextSwitcher) Selected() string {
	row, _ := v.GetSelection()
	if row < 1 || row > len(v.contexts) {
		return ""
	}
	return v.contexts[row-1]
}

func (v *ContextSwitcher) switchCmd(*tcell.EventKey) *tcell.EventKey {
	name := v.Selected()
	if name == "" {
		return nil
	}
	if name == v.app.KubeContext() {
		v.app.Flash().Infof("Already on context %s", name)
		return nil
	}
	if err := v.app.SwitchContext(name); err != nil {
		v.app.Flash().Err(err)
		return nil
	}
	v.app.Flash().Infof("Switched to context %s", name)

	return nil
}

func (v *ContextSwitcher) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, col := v.GetSelection()
	switch ui.AsKey(evt) {
	case ui.KeyJ, tcell.KeyDown:
		if row < v.GetRowCount()-1 {
			v.Select(row+1, col)
		}
		return nil
	case ui.KeyK, tcell.KeyUp:
		if row > 1 {
			v.Select(row-1, col)
		}
		return nil
	case tcell.KeyEnter:
		return v.switchCmd(evt)
	}

	return evt
}
