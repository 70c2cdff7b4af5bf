// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package render builds mode dispatching cell renderers out of decorator
// chains.
package render

// Mode selects what a render function produces.
type Mode string

const (
	// ModeSort asks for a sort key.
	ModeSort Mode = "sort"
	// ModeType asks for the type detection key, same as sort.
	ModeType Mode = "type"
	// ModeFilter asks for a filter key.
	ModeFilter Mode = "filter"
	// ModeDisplay asks for displayable content.
	ModeDisplay Mode = "display"
)

// Func renders a raw cell for the given mode. Sort and filter modes return
// primitives, display mode returns a Value.
type Func func(raw any, mode Mode, row any) any

// Decorator transforms the previous display value. It also sees the raw
// cell so it can ignore earlier wrapping.
type Decorator func(prev Value, raw any, row any) Value

// Transform maps a raw cell to a sort or filter key.
type Transform func(raw any, row any) any

func identity(raw any, _ any) any {
	return raw
}

// Builder accumulates decorators and transforms.
type Builder struct {
	decorators []Decorator
	sortFn     Transform
	filterFn   Transform
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		sortFn:   identity,
		filterFn: identity,
	}
}

// Decorate appends a decorator.
func (b *Builder) Decorate(d Decorator) *Builder {
	b.decorators = append(b.decorators, d)
	return b
}

// Sort replaces the sort transform.
func (b *Builder) Sort(fn Transform) *Builder {
	if fn == nil {
		fn = identity
	}
	b.sortFn = fn
	return b
}

// Filter replaces the filter transform.
func (b *Builder) Filter(fn Transform) *Builder {
	if fn == nil {
		fn = identity
	}
	b.filterFn = fn
	return b
}

// Build returns the render function. Later builder calls do not affect it.
func (b *Builder) Build() Func {
	dd := make([]Decorator, len(b.decorators))
	copy(dd, b.decorators)
	sortFn, filterFn := b.sortFn, b.filterFn

	return func(raw any, mode Mode, row any) any {
		switch mode {
		case ModeSort, ModeType:
			return sortFn(raw, row)
		case ModeFilter:
			return filterFn(raw, row)
		case ModeDisplay:
			acc := ValueOf(raw)
			for _, d := range dd {
				acc = d(acc, raw, row)
			}
			return acc
		default:
			return raw
		}
	}
}

// Display runs fn in display mode and returns the value.
func Display(fn Func, raw any, row any) Value {
	return AsValue(fn(raw, ModeDisplay, row))
}
