// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package render

import (
	"fmt"
	"sort"
	"time"
)

// Renderer names usable from configuration files.
const (
	NameDefault  = "default"
	NameAge      = "age"
	NameStatus   = "status"
	NameSelector = "selector"
	NamePlain    = "plain"
)

// Library builds the stock renderers.
type Library struct {
	// Lookup translates cell text. Nil disables translation.
	Lookup LookupFunc
	// Now is the reference time for relative timestamps.
	Now func() time.Time
	// Statuses drives status badges and their sort order.
	Statuses StatusTable
}

// NewLibrary returns a library using the default status table.
func NewLibrary(lookup LookupFunc) *Library {
	return &Library{
		Lookup:   lookup,
		Now:      time.Now,
		Statuses: DefaultStatusTable,
	}
}

func (l *Library) statuses() StatusTable {
	if len(l.Statuses) == 0 {
		return DefaultStatusTable
	}
	return l.Statuses
}

// Plain renders the raw value untouched.
func (l *Library) Plain() Func {
	return NewBuilder().Build()
}

// Default translates and truncates.
func (l *Library) Default() Func {
	return NewBuilder().
		Decorate(Translate(l.Lookup)).
		Decorate(Ellipsis).
		Build()
}

// Age renders Unix timestamps as relative times.
func (l *Library) Age() Func {
	return NewBuilder().
		Decorate(RelativeTime(l.Now)).
		Decorate(Ellipsis).
		Sort(ageSortKey).
		Build()
}

// Status renders status badges sorted by severity.
func (l *Library) Status() Func {
	t := l.statuses()
	return NewBuilder().
		Decorate(Translate(l.Lookup)).
		Decorate(StatusBadge(t)).
		Sort(StatusSortKey(t)).
		Build()
}

// Selector renders label selectors as pills.
func (l *Library) Selector() Func {
	return NewBuilder().
		Decorate(LabelSet).
		Decorate(Ellipsis).
		Build()
}

// Named returns a stock renderer by name.
func (l *Library) Named(name string) (Func, error) {
	switch name {
	case NameDefault, "":
		return l.Default(), nil
	case NameAge:
		return l.Age(), nil
	case NameStatus:
		return l.Status(), nil
	case NameSelector:
		return l.Selector(), nil
	case NamePlain:
		return l.Plain(), nil
	default:
		return nil, fmt.Errorf("unknown renderer %q (known: %v)", name, Names())
	}
}

// Names lists the renderer names accepted by Named.
func Names() []string {
	nn := []string{NameDefault, NameAge, NameStatus, NameSelector, NamePlain}
	sort.Strings(nn)
	return nn
}

// ageSortKey zero pads timestamps so string comparison follows time order.
// Flipping the sign bit keeps pre-epoch times ordered before later ones.
func ageSortKey(raw any, _ any) any {
	ts, ok := toUnix(raw)
	if !ok {
		return fmt.Sprint(raw)
	}
	return fmt.Sprintf("%020d", uint64(ts)^(1<<63))
}
