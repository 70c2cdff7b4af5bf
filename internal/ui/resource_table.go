// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/spyglass/spyglass/internal/i18n"
	"github.com/spyglass/spyglass/internal/model1"
	"github.com/spyglass/spyglass/internal/render"
)

// TableOption configures a ResourceTable.
type TableOption func(*ResourceTable)

// WithQueue routes redraws through fn, typically the application update
// queue. Without it updates are applied inline.
func WithQueue(fn func(func())) TableOption {
	return func(r *ResourceTable) {
		if fn != nil {
			r.queue = fn
		}
	}
}

// WithTranslator translates column and resource names.
func WithTranslator(t *i18n.Translator) TableOption {
	return func(r *ResourceTable) {
		r.tr = t
	}
}

// WithCellFallback sets the renderer of columns without one.
func WithCellFallback(fn render.Func) TableOption {
	return func(r *ResourceTable) {
		if fn != nil {
			r.fallback = fn
		}
	}
}

// WithCellWidth caps truncating cells.
func WithCellWidth(n int) TableOption {
	return func(r *ResourceTable) {
		r.width = n
	}
}

// ResourceTable shows a refreshing table model.
type ResourceTable struct {
	*tview.Table

	model    Tabular
	skin     Skin
	markup   Markup
	tr       *i18n.Translator
	fallback render.Func
	width    int
	queue    func(func())
	actions  *KeyActions

	mx   sync.RWMutex
	data *model1.TableData
	err  error
}

// NewResourceTable returns a table view bound to m.
func NewResourceTable(m Tabular, skin Skin, opts ...TableOption) *ResourceTable {
	r := ResourceTable{
		Table:    tview.NewTable(),
		model:    m,
		skin:     skin,
		fallback: render.NewBuilder().Build(),
		queue:    func(f func()) { f() },
		actions:  NewKeyActions(),
	}
	for _, o := range opts {
		o(&r)
	}
	r.markup = NewMarkup(skin, r.width)

	r.SetBorder(true)
	r.SetBorderAttributes(tcell.AttrBold)
	r.SetBorderPadding(0, 0, 1, 1)
	r.SetBorderColor(skin.Border)
	r.SetTitleColor(skin.Title)
	r.SetBackgroundColor(tcell.ColorDefault)
	r.SetFixed(1, 0)
	r.SetSelectable(true, false)

	return &r
}

// Init binds keys and registers the table with its model.
func (r *ResourceTable) Init(context.Context) error {
	r.SetInputCapture(r.keyboard)
	r.bindKeys()
	r.showMessage("Loading...", r.skin.Dim)
	r.updateTitle()
	r.model.AddListener(r)

	return nil
}

// Close unregisters the table from its model.
func (r *ResourceTable) Close() {
	r.model.RemoveListener(r)
}

// Model returns the bound model.
func (r *ResourceTable) Model() Tabular {
	return r.model
}

// Actions returns key actions.
func (r *ResourceTable) Actions() *KeyActions {
	return r.actions
}

// Hints returns menu hints.
func (r *ResourceTable) Hints() MenuHints {
	return r.actions.Hints()
}

// Data returns the last rendered data.
func (r *ResourceTable) Data() *model1.TableData {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.data
}

// LastError returns the last refresh error, cleared by the next success.
func (r *ResourceTable) LastError() error {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.err
}

// SelectedID returns the ID of the selected row.
func (r *ResourceTable) SelectedID() string {
	row, _ := r.GetSelection()
	if row == 0 {
		return ""
	}
	cell := r.GetCell(row, 0)
	if cell == nil {
		return ""
	}
	if id, ok := cell.GetReference().(string); ok {
		return id
	}
	return ""
}

// TableDataChanged implements model.TableListener.
func (r *ResourceTable) TableDataChanged(data *model1.TableData) {
	r.queue(func() { r.update(data) })
}

// TableNoData implements model.TableListener.
func (r *ResourceTable) TableNoData(data *model1.TableData) {
	r.queue(func() { r.update(data) })
}

// TableLoadFailed implements model.TableListener. Rows of the previous
// refresh stay on screen.
func (r *ResourceTable) TableLoadFailed(err error) {
	r.queue(func() {
		r.mx.Lock()
		r.err = err
		empty := r.data == nil || r.data.Empty()
		r.mx.Unlock()
		if empty {
			r.showMessage(err.Error(), r.skin.Badge(render.SeverityDanger))
		}
		r.updateTitle()
	})
}

func (r *ResourceTable) update(data *model1.TableData) {
	sel := r.SelectedID()
	r.mx.Lock()
	r.data, r.err = data, nil
	r.mx.Unlock()

	r.Clear()
	h := data.Header()
	r.buildHeader(h)
	if data.Empty() {
		r.updateTitle()
		return
	}

	selRow := 1
	data.RowEvents().Range(func(i int, re model1.RowEvent) bool {
		r.buildRow(h, re, i+1)
		if re.Row.ID == sel {
			selRow = i + 1
		}
		return true
	})
	r.Select(selRow, 0)
	r.updateTitle()
}

func (r *ResourceTable) buildHeader(h model1.Header) {
	for col, c := range h {
		cell := tview.NewTableCell(tview.Escape(strings.ToUpper(r.columnTitle(c.Name))))
		cell.SetTextColor(r.skin.Header)
		cell.SetAttributes(tcell.AttrBold)
		cell.SetAlign(c.Align)
		cell.SetExpansion(1)
		cell.SetSelectable(false)
		r.SetCell(0, col, cell)
	}
}

func (r *ResourceTable) buildRow(h model1.Header, re model1.RowEvent, row int) {
	color := r.rowColor(re)
	for col := range h {
		v := render.Display(h.RenderAt(col, r.fallback), re.Row.Cell(col), re.Row)
		cell := tview.NewTableCell(r.markup.Cell(v))
		cell.SetTextColor(color)
		cell.SetAlign(h[col].Align)
		cell.SetExpansion(1)
		if col == 0 {
			cell.SetReference(re.Row.ID)
		}
		r.SetCell(row, col, cell)
	}
}

func (r *ResourceTable) rowColor(re model1.RowEvent) tcell.Color {
	if re.Kind == model1.EventUnchanged {
		return r.skin.Fg
	}
	return model1.DefaultColorer(&re)
}

func (r *ResourceTable) columnTitle(name string) string {
	if r.tr == nil {
		return name
	}
	return r.tr.Column(name)
}

func (r *ResourceTable) showMessage(msg string, color tcell.Color) {
	r.Clear()
	cell := tview.NewTableCell(tview.Escape(msg))
	cell.SetTextColor(color)
	cell.SetAlign(tview.AlignCenter)
	cell.SetExpansion(1)
	cell.SetSelectable(false)
	r.SetCell(0, 0, cell)
}

// Title returns the border title: resource, namespace and row count.
func (r *ResourceTable) Title() string {
	name := r.model.Key().Resource
	if r.tr != nil {
		name = r.tr.Resource(r.model.Key())
	}
	ns := r.model.Namespace()
	if ns == "" {
		ns = "all"
	}
	r.mx.RLock()
	count := 0
	if r.data != nil {
		count = r.data.RowCount()
	}
	failed := r.err != nil
	r.mx.RUnlock()

	title := fmt.Sprintf(" %s(%s)[%d] ", strings.ToLower(name), ns, count)
	if failed {
		title = fmt.Sprintf("[%s::b]%s[-::-]", ColorTag(r.skin.Badge(render.SeverityDanger)), title)
	}
	return title
}

func (r *ResourceTable) updateTitle() {
	r.SetTitle(r.Title())
}

func (r *ResourceTable) bindKeys() {
	r.actions.Bulk(KeyMap{
		KeyR:           NewKeyAction("Reload", r.reloadCmd, true),
		tcell.KeyCtrlR: NewKeyAction("Reload", r.reloadCmd, false),
	})
}

func (r *ResourceTable) reloadCmd(*tcell.EventKey) *tcell.EventKey {
	r.model.Reload()
	return nil
}

func (r *ResourceTable) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, col := r.GetSelection()
	count := r.GetRowCount()

	switch AsKey(evt) {
	case KeyJ, tcell.KeyDown:
		if row < count-1 {
			r.Select(row+1, col)
		}
		return nil
	case KeyK, tcell.KeyUp:
		if row > 1 {
			r.Select(row-1, col)
		}
		return nil
	case KeyG, tcell.KeyHome:
		if count > 1 {
			r.Select(1, col)
		}
		return nil
	case KeyShiftG, tcell.KeyEnd:
		if count > 1 {
			r.Select(count-1, col)
		}
		return nil
	}

	if a, ok := r.actions.Get(AsKey(evt)); ok {
		return a.Action(evt)
	}

	return evt
}
