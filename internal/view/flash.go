// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/spyglass/spyglass/internal/render"
	"github.com/spyglass/spyglass/internal/ui"
)

// FlashDelay sets the flash auto-clear delay.
const FlashDelay = 5 * time.Second

// FlashLevel represents flash message severity.
type FlashLevel int

const (
	// FlashInfo represents an info message.
	FlashInfo FlashLevel = iota
	// FlashWarn represents a warning message.
	FlashWarn
	// FlashErr represents an error message.
	FlashErr
)

// Flash shows transient status messages.
type Flash struct {
	*tview.TextView

	skin   ui.Skin
	queue  func(func())
	delay  time.Duration
	cancel context.CancelFunc
	last   string
	mx     sync.RWMutex
}

// NewFlash creates a flash bar. Updates go through queue.
func NewFlash(skin ui.Skin, queue func(func())) *Flash {
	if queue == nil {
		queue = func(f func()) { f() }
	}
	f := Flash{
		TextView: tview.NewTextView(),
		skin:     skin,
		queue:    queue,
		delay:    FlashDelay,
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)
	f.SetBackgroundColor(tcell.ColorDefault)

	return &f
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.setMessage(FlashInfo, msg)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...any) {
	f.Info(fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) {
	f.setMessage(FlashWarn, msg)
}

// Err displays an error message.
func (f *Flash) Err(err error) {
	if err != nil {
		f.setMessage(FlashErr, err.Error())
	}
}

// Errf displays a formatted error message.
func (f *Flash) Errf(format string, args ...any) {
	f.setMessage(FlashErr, fmt.Sprintf(format, args...))
}

// Message returns the last message.
func (f *Flash) Message() string {
	f.mx.RLock()
	defer f.mx.RUnlock()
	return f.last
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.last = ""
	f.mx.Unlock()

	f.queue(func() { f.TextView.Clear() })
}

func (f *Flash) setMessage(level FlashLevel, msg string) {
	if msg == "" {
		f.Clear()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.cancel, f.last = cancel, msg
	f.mx.Unlock()

	f.queue(func() {
		f.TextView.Clear()
		f.SetTextColor(f.color(level))
		_, _ = fmt.Fprintf(f.TextView, "%s %s", flashPrefix(level), tview.Escape(msg))
	})

	go f.autoClear(ctx)
}

func (f *Flash) autoClear(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(f.delay):
		f.Clear()
	}
}

func (f *Flash) color(level FlashLevel) tcell.Color {
	switch level {
	case FlashWarn:
		return f.skin.Badge(render.SeverityWarning)
	case FlashErr:
		return f.skin.Badge(render.SeverityDanger)
	default:
		return f.skin.Badge(render.SeveritySuccess)
	}
}

func flashPrefix(level FlashLevel) string {
	switch level {
	case FlashWarn:
		return "[WARN[]"
	case FlashErr:
		return "[ERROR[]"
	default:
		return "[INFO[]"
	}
}
