// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spyglass/spyglass/internal/model1"
	"github.com/spyglass/spyglass/internal/refresh"
	"github.com/spyglass/spyglass/internal/render"
	"github.com/spyglass/spyglass/internal/resource"
	"github.com/wI2L/jsondiff"
)

// ErrNoSource is returned when the table has nothing to fetch from.
var ErrNoSource = errors.New("no data source configured")

// TableOption configures a table.
type TableOption func(*Table)

// WithRefreshRate sets the delay between refreshes.
func WithRefreshRate(d time.Duration) TableOption {
	return func(t *Table) {
		t.refreshRate = d
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) TableOption {
	return func(t *Table) {
		t.log = l
	}
}

// WithMetrics records cycles and row counts.
func WithMetrics(m Metrics) TableOption {
	return func(t *Table) {
		t.metrics = m
	}
}

// WithClock swaps the scheduler clock.
func WithClock(c refresh.Clock) TableOption {
	return func(t *Table) {
		t.clock = c
	}
}

// WithFallback sets the renderer of columns without an override.
func WithFallback(fn render.Func) TableOption {
	return func(t *Table) {
		t.fallback = fn
	}
}

// WithNamespace sets the initial namespace. Empty means all namespaces.
func WithNamespace(ns string) TableOption {
	return func(t *Table) {
		t.namespace = ns
	}
}

// Table fetches one resource type and keeps it projected through its
// resolved display rules. It drives itself through a refresh scheduler.
type Table struct {
	key         resource.Key
	source      Source
	resolver    Resolver
	fallback    render.Func
	refreshRate time.Duration
	clock       refresh.Clock
	metrics     Metrics
	log         zerolog.Logger
	scheduler   *refresh.Scheduler

	mx        sync.RWMutex
	namespace string
	filter    string
	data      *model1.TableData
	snapshot  snapshot
	changes   jsondiff.Patch
	listeners []TableListener
}

// NewTable returns a table model for key.
func NewTable(key resource.Key, src Source, res Resolver, opts ...TableOption) *Table {
	t := Table{
		key:         key,
		source:      src,
		resolver:    res,
		fallback:    render.NewLibrary(nil).Default(),
		refreshRate: refresh.DefaultInterval,
		log:         zerolog.Nop(),
	}
	for _, o := range opts {
		o(&t)
	}
	t.log = t.log.With().Str("resource", key.String()).Logger()
	t.data = model1.NewTableData(model1.TableSpec{Key: key.String(), Namespace: t.namespace})

	sopts := []refresh.Option{
		refresh.WithInterval(t.refreshRate),
		refresh.WithLogger(t.log),
		refresh.WithName(key.String()),
		refresh.WithClock(t.clock),
	}
	if t.metrics != nil {
		sopts = append(sopts, refresh.WithMetrics(t.metrics))
	}
	t.scheduler = refresh.New(&t, sopts...)

	return &t
}

// Key returns the resource key.
func (t *Table) Key() resource.Key {
	return t.key
}

// Scheduler exposes the refresh scheduler.
func (t *Table) Scheduler() *refresh.Scheduler {
	return t.scheduler
}

// Namespace returns the current namespace.
func (t *Table) Namespace() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.namespace
}

// SetNamespace switches namespace and refetches right away.
func (t *Table) SetNamespace(ns string) {
	t.mx.Lock()
	t.namespace = ns
	t.mx.Unlock()

	t.scheduler.Refresh()
}

// Filter returns the current filter.
func (t *Table) Filter() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.filter
}

// SetFilter changes the row filter and refetches right away.
func (t *Table) SetFilter(q string) {
	t.mx.Lock()
	t.filter = q
	t.mx.Unlock()

	t.scheduler.Refresh()
}

// Header returns the table header.
func (t *Table) Header() model1.Header {
	return t.Peek().Header()
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return t.Peek().RowCount()
}

// Empty returns true if no data is available.
func (t *Table) Empty() bool {
	return t.Peek().Empty()
}

// Peek returns the current table data.
func (t *Table) Peek() *model1.TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data
}

// Changes returns the JSON patch between the last two accepted refreshes.
func (t *Table) Changes() jsondiff.Patch {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.changes
}

// AddListener registers a table listener.
func (t *Table) AddListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.listeners = append(t.listeners, l)
}

// RemoveListener unregisters a table listener.
func (t *Table) RemoveListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()

	for i, listener := range t.listeners {
		if listener == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

// Watch runs the first refresh and keeps refreshing until ctx is done or
// Stop is called.
func (t *Table) Watch(ctx context.Context) {
	t.scheduler.Start(ctx)
}

// Reload refetches immediately, superseding any in-flight refresh.
func (t *Table) Reload() {
	t.scheduler.Refresh()
}

// Stop stops refreshing for good.
func (t *Table) Stop() {
	t.scheduler.Stop()
}

// Refresh fetches and projects the table once. It implements refresh.Fetcher.
func (t *Table) Refresh(ctx context.Context) error {
	if t.source == nil {
		return ErrNoSource
	}
	t.mx.RLock()
	ns, q := t.namespace, t.filter
	t.mx.RUnlock()

	raw, err := t.source.ListTabular(ctx, t.key, ns)
	if err != nil {
		return fmt.Errorf("list %s: %w", t.key, err)
	}

	cfg := t.resolver.Resolve(t.key)
	header, rows := Project(raw, cfg, t.fallback, ns == "")
	rows = Filter(header, rows, q)
	Sort(header, rows, cfg.DefaultOrder)
	snap := takeSnapshot(header, rows)

	t.mx.Lock()
	if err := ctx.Err(); err != nil {
		t.mx.Unlock()
		return err
	}
	patch, err := jsondiff.Compare(t.snapshot, snap)
	if err != nil {
		t.log.Warn().Err(err).Msg("Change detection failed")
	}
	data := model1.NewTableData(model1.TableSpec{
		Key:       t.key.String(),
		Namespace: ns,
		Filter:    q,
		Header:    header,
		Rows:      model1.Reconcile(t.data.RowEvents(), rows, header),
		Refreshed: t.now(),
	})
	t.data, t.snapshot, t.changes = data, snap, patch
	listeners := append([]TableListener(nil), t.listeners...)
	t.mx.Unlock()

	t.log.Debug().Int("rows", len(rows)).Int("changes", len(patch)).Msg("Table refreshed")
	if t.metrics != nil {
		t.metrics.SetTableRows(t.key.String(), len(rows))
	}
	for _, l := range listeners {
		if data.Empty() {
			l.TableNoData(data)
		} else {
			l.TableDataChanged(data)
		}
	}

	return nil
}

// OnError records a failed refresh. It implements refresh.Fetcher.
func (t *Table) OnError(err error) {
	t.mx.Lock()
	t.data = t.data.WithError(err)
	listeners := append([]TableListener(nil), t.listeners...)
	t.mx.Unlock()

	for _, l := range listeners {
		l.TableLoadFailed(err)
	}
}

func (t *Table) now() time.Time {
	if t.clock != nil {
		return t.clock.Now()
	}
	return time.Now()
}

// snapshot is the comparable form of a projected table.
type snapshot struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func takeSnapshot(h model1.Header, rows model1.Rows) snapshot {
	s := snapshot{
		Columns: h.ColumnNames(),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		cells := make([]string, 0, len(r.Cells)+1)
		cells = append(cells, r.ID)
		for i, c := range r.Cells {
			cells = append(cells, model1.FilterKey(h.RenderAt(i, nil), c, r))
		}
		s.Rows = append(s.Rows, cells)
	}

	return s
}
