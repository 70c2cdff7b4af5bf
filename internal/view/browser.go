// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package view

import (
	"context"
	"sync"

	"github.com/derailed/tcell/v2"

	"github.com/spyglass/spyglass/internal/model"
	"github.com/spyglass/spyglass/internal/resource"
	"github.com/spyglass/spyglass/internal/ui"
)

// Browser lists one resource type and keeps it refreshed while visible.
type Browser struct {
	*ui.ResourceTable

	app   *App
	key   resource.Key
	model *model.Table

	mx     sync.Mutex
	cancel context.CancelFunc
}

// NewBrowser returns a browser of key.
func NewBrowser(app *App, key resource.Key) *Browser {
	return &Browser{app: app, key: key}
}

// Init builds the table model and view.
func (b *Browser) Init(ctx context.Context) error {
	deps := b.app.deps
	opts := []model.TableOption{
		model.WithNamespace(b.app.Namespace()),
		model.WithRefreshRate(deps.Config.Spyglass.RefreshInterval()),
		model.WithLogger(deps.Logger),
		model.WithFallback(deps.Library.Default()),
	}
	if deps.Metrics != nil {
		opts = append(opts, model.WithMetrics(deps.Metrics))
	}
	b.model = model.NewTable(b.key, b.app.Source(), deps.Resolver, opts...)

	b.ResourceTable = ui.NewResourceTable(
		b.model,
		b.app.Skin(),
		ui.WithQueue(b.app.QueueUpdateDraw),
		ui.WithTranslator(deps.Translator),
		ui.WithCellFallback(deps.Library.Default()),
	)
	if err := b.ResourceTable.Init(ctx); err != nil {
		return err
	}
	b.bindKeys()

	return nil
}

// Name returns the resource name.
func (b *Browser) Name() string {
	return b.key.Resource
}

// Key returns the listed resource type.
func (b *Browser) Key() resource.Key {
	return b.key
}

// Model returns the table model.
func (b *Browser) Model() *model.Table {
	return b.model
}

// Start watches the resource until Stop. It is a no-op while watching.
func (b *Browser) Start() {
	b.mx.Lock()
	defer b.mx.Unlock()
	if b.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(b.app.Context())
	b.cancel = cancel
	go b.model.Watch(ctx)
}

// Stop pauses watching. A later Start resumes.
func (b *Browser) Stop() {
	b.mx.Lock()
	defer b.mx.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

// Close stops the browser for good.
func (b *Browser) Close() {
	b.Stop()
	if b.model != nil {
		b.model.Stop()
	}
	if b.ResourceTable != nil {
		b.ResourceTable.Close()
	}
}

// SetFilter filters rows on their rendered filter keys.
func (b *Browser) SetFilter(q string) {
	go b.model.SetFilter(q)
}

// SetNamespace lists another namespace. Empty means all.
func (b *Browser) SetNamespace(ns string) {
	go b.model.SetNamespace(ns)
}

func (b *Browser) bindKeys() {
	km := ui.KeyMap{
		ui.Key0: ui.NewKeyAction("all", b.namespaceCmd(""), true),
	}
	if ns := b.app.Namespace(); ns != "" {
		km[ui.Key0+1] = ui.NewKeyAction(ns, b.namespaceCmd(ns), true)
	}
	b.Actions().Bulk(km)
}

func (b *Browser) namespaceCmd(ns string) ui.ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		b.app.SwitchNamespace(ns)
		label := ns
		if label == "" {
			label = "all"
		}
		b.app.Flash().Infof("Viewing %s in namespace %s", b.key.Resource, label)
		return nil
	}
}
