// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spyglass/spyglass/internal/model"
	"github.com/spyglass/spyglass/internal/model1"
	"github.com/spyglass/spyglass/internal/printer"
	"github.com/spyglass/spyglass/internal/resource"
)

func newGetCmd() *cobra.Command {
	var watch bool
	cmd := cobra.Command{
		Use:   "get RESOURCE",
		Short: "Print a resource table",
		Long:  "Print a resource table once, or keep reprinting it as it changes with --watch.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.OutOrStdout(), args[0], watch)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep refreshing and print each change")

	return &cmd
}

func runGet(out io.Writer, name string, watch bool) error {
	e, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer e.Close()

	key, ok := e.aliases.Resolve(name)
	if !ok {
		return fmt.Errorf("%w: %q", resource.ErrInvalidKey, name)
	}
	s := e.cfg.Spyglass
	t := model.NewTable(
		key,
		e.client.Session(s.KubeContext),
		e.holder,
		model.WithNamespace(s.Namespace),
		model.WithRefreshRate(s.RefreshInterval()),
		model.WithLogger(e.logger),
		model.WithFallback(e.lib.Default()),
		model.WithMetrics(e.metrics),
	)
	p := printer.New(out, printer.WithTheme(s.UI.Theme), printer.WithFallback(e.lib.Default()))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !watch {
		if err := t.Refresh(ctx); err != nil {
			if quietErr(err) {
				return nil
			}
			return err
		}
		data := t.Peek()
		return p.Table(data.Header(), data.RowEvents().Rows())
	}

	w := watcher{table: t, printer: p}
	t.AddListener(&w)
	defer t.RemoveListener(&w)
	go func() {
		<-ctx.Done()
		t.Stop()
	}()
	t.Watch(ctx)
	<-ctx.Done()

	return nil
}

// watcher reprints the table on the first load and whenever rows change.
type watcher struct {
	table   *model.Table
	printer *printer.Printer
	printed bool
	mx      sync.Mutex
}

func (w *watcher) TableDataChanged(data *model1.TableData) {
	w.mx.Lock()
	defer w.mx.Unlock()

	if w.printed && len(w.table.Changes()) == 0 {
		return
	}
	w.printed = true
	_ = w.printer.Table(data.Header(), data.RowEvents().Rows())
}

func (w *watcher) TableNoData(data *model1.TableData) {
	w.TableDataChanged(data)
}

func (w *watcher) TableLoadFailed(err error) {
	if quietErr(err) {
		return
	}
	w.mx.Lock()
	defer w.mx.Unlock()

	_ = w.printer.Error(err)
}
