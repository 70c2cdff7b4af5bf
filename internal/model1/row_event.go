// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package model1

import "fmt"

// RowEvent tracks how a row changed since the previous refresh.
type RowEvent struct {
	Kind   ResEvent
	Row    Row
	Deltas DeltaRow
}

// NewRowEvent returns an event without deltas.
func NewRowEvent(kind ResEvent, row Row) RowEvent {
	return RowEvent{
		Kind: kind,
		Row:  row,
	}
}

// NewRowEventWithDeltas returns an update event.
func NewRowEventWithDeltas(row Row, delta DeltaRow) RowEvent {
	return RowEvent{
		Kind:   EventUpdate,
		Row:    row,
		Deltas: delta,
	}
}

// Clone returns a deep copy.
func (r RowEvent) Clone() RowEvent {
	return RowEvent{
		Kind:   r.Kind,
		Row:    r.Row.Clone(),
		Deltas: r.Deltas.Clone(),
	}
}

// Customize picks columns by index.
func (r RowEvent) Customize(cols []int) RowEvent {
	delta := r.Deltas
	if !r.Deltas.IsBlank() {
		delta = make(DeltaRow, len(cols))
		r.Deltas.Customize(cols, delta)
	}
	return RowEvent{
		Kind:   r.Kind,
		Deltas: delta,
		Row:    r.Row.Customize(cols),
	}
}

// Diff returns true if the events differ outside the age column.
func (r RowEvent) Diff(re RowEvent, ageCol int) bool {
	if r.Kind != re.Kind {
		return true
	}
	if r.Deltas.Diff(re.Deltas, ageCol) {
		return true
	}
	return r.Row.Diff(re.Row, ageCol)
}

// RowEvents an ordered collection of row events indexed by row ID.
type RowEvents struct {
	events []RowEvent
	index  map[string]int
}

// NewRowEvents returns an empty collection.
func NewRowEvents(size int) *RowEvents {
	return &RowEvents{
		events: make([]RowEvent, 0, size),
		index:  make(map[string]int, size),
	}
}

// Reconcile builds events for rows against the previous refresh. Rows keep
// their order; rows gone since prev are not carried over.
func Reconcile(prev *RowEvents, rows Rows, h Header) *RowEvents {
	out := NewRowEvents(len(rows))
	ageCol := h.AgeCol()
	for _, row := range rows {
		if prev == nil {
			out.Add(NewRowEvent(EventAdd, row))
			continue
		}
		old, ok := prev.Get(row.ID)
		switch {
		case !ok:
			out.Add(NewRowEvent(EventAdd, row))
		case old.Row.Diff(row, ageCol):
			out.Add(NewRowEventWithDeltas(row, NewDeltaRow(old.Row, row, h)))
		default:
			out.Add(NewRowEvent(EventUnchanged, row))
		}
	}

	return out
}

func (r *RowEvents) reindex() {
	for i, e := range r.events {
		r.index[e.Row.ID] = i
	}
}

// At returns the event at position i.
func (r *RowEvents) At(i int) (RowEvent, bool) {
	if i < 0 || i >= len(r.events) {
		return RowEvent{}, false
	}
	return r.events[i], true
}

// Set replaces the event at position i.
func (r *RowEvents) Set(i int, re RowEvent) {
	r.events[i] = re
	r.index[re.Row.ID] = i
}

// Add appends an event.
func (r *RowEvents) Add(re RowEvent) {
	r.events = append(r.events, re)
	r.index[re.Row.ID] = len(r.events) - 1
}

// Len returns the number of events.
func (r *RowEvents) Len() int {
	return len(r.events)
}

// Empty returns true if there are no events.
func (r *RowEvents) Empty() bool {
	return len(r.events) == 0
}

// Clear drops all events.
func (r *RowEvents) Clear() {
	r.events = r.events[:0]
	clear(r.index)
}

// Get returns the event for a row ID.
func (r *RowEvents) Get(id string) (RowEvent, bool) {
	i, ok := r.index[id]
	if !ok {
		return RowEvent{}, false
	}
	return r.At(i)
}

// FindIndex returns the position of a row ID.
func (r *RowEvents) FindIndex(id string) (int, bool) {
	i, ok := r.index[id]
	return i, ok
}

// Upsert replaces or appends an event.
func (r *RowEvents) Upsert(re RowEvent) {
	if idx, ok := r.FindIndex(re.Row.ID); ok {
		r.events[idx] = re
	} else {
		r.Add(re)
	}
}

// Delete removes the event for a row ID.
func (r *RowEvents) Delete(id string) error {
	victim, ok := r.FindIndex(id)
	if !ok {
		return fmt.Errorf("unable to delete row with id: %q", id)
	}
	r.events = append(r.events[0:victim], r.events[victim+1:]...)
	delete(r.index, id)
	r.reindex()
	return nil
}

// Clone returns a deep copy.
func (r *RowEvents) Clone() *RowEvents {
	out := NewRowEvents(len(r.events))
	for _, e := range r.events {
		out.Add(e.Clone())
	}
	return out
}

// Range iterates until f returns false.
func (r *RowEvents) Range(f func(int, RowEvent) bool) {
	for i, e := range r.events {
		if !f(i, e) {
			return
		}
	}
}

// Rows returns the rows in order.
func (r *RowEvents) Rows() Rows {
	rr := make(Rows, 0, len(r.events))
	for _, e := range r.events {
		rr = append(rr, e.Row)
	}
	return rr
}
