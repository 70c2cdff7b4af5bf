// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"context"
	"strconv"
	"sync"

	"github.com/derailed/tview"

	"github.com/spyglass/spyglass/internal/model"
	"github.com/spyglass/spyglass/internal/model1"
	"github.com/spyglass/spyglass/internal/resource"
)

// Tabular represents a refreshing table model.
type Tabular interface {
	// Key returns the listed resource type.
	Key() resource.Key

	// Namespace returns the listed namespace. Empty means all.
	Namespace() string

	// SetNamespace changes the listed namespace.
	SetNamespace(string)

	// SetFilter changes the row filter.
	SetFilter(string)

	// Peek returns current model data.
	Peek() *model1.TableData

	// Reload forces a new refresh.
	Reload()

	// AddListener registers a model listener.
	AddListener(model.TableListener)

	// RemoveListener unregister a model listener.
	RemoveListener(model.TableListener)
}

// MenuHint represents a keyboard mnemonic.
type MenuHint struct {
	Mnemonic    string
	Description string
	Visible     bool
}

// IsBlank checks if menu hint is a placeholder.
func (m MenuHint) IsBlank() bool {
	return m.Mnemonic == "" && m.Description == "" && !m.Visible
}

// MenuHints represents a collection of hints.
type MenuHints []MenuHint

func (h MenuHints) Len() int {
	return len(h)
}

func (h MenuHints) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Less orders numeric mnemonics first, then by description.
func (h MenuHints) Less(i, j int) bool {
	n, err1 := strconv.Atoi(h[i].Mnemonic)
	m, err2 := strconv.Atoi(h[j].Mnemonic)
	switch {
	case err1 == nil && err2 == nil:
		return n < m
	case err1 == nil:
		return true
	case err2 == nil:
		return false
	}
	return h[i].Description < h[j].Description
}

// Hinter represent a menu mnemonic provider.
type Hinter interface {
	// Hints returns a collection of menu hints.
	Hints() MenuHints
}

// Primitive represents a UI primitive.
type Primitive interface {
	tview.Primitive

	// Name returns the view name.
	Name() string
}

// Igniter represents a runnable view.
type Igniter interface {
	// Init initializes a component.
	Init(ctx context.Context) error

	// Start starts a component.
	Start()

	// Stop terminates a component.
	Stop()
}

// Component represents a ui component.
type Component interface {
	Primitive
	Igniter
	Hinter
}

// StackListener represents a stack listener.
type StackListener interface {
	// StackPushed indicates a new item was added.
	StackPushed(Component)

	// StackPopped indicates an item was deleted
	StackPopped(old, new Component)

	// StackTop indicates the top of the stack
	StackTop(Component)
}

// StackAction represents an action on the stack.
type StackAction int

const (
	// StackPush denotes an add on the stack.
	StackPush StackAction = 1 << iota

	// StackPop denotes a delete on the stack.
	StackPop
)

// Stack represents a stack of components. Pushing stops the previous top
// and popping stops the removed component.
type Stack struct {
	components []Component
	listeners  []StackListener
	mx         sync.RWMutex
}

// NewStack returns a new initialized stack.
func NewStack() *Stack {
	return &Stack{}
}

// Flatten returns the component names, bottom first.
func (s *Stack) Flatten() []string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	ss := make([]string, len(s.components))
	for i, c := range s.components {
		ss[i] = c.Name()
	}
	return ss
}

// AddListener registers a stack listener.
func (s *Stack) AddListener(l StackListener) {
	s.listeners = append(s.listeners, l)
	if !s.Empty() {
		l.StackTop(s.Top())
	}
}

// Push adds a new item.
func (s *Stack) Push(c Component) {
	if top := s.Top(); top != nil {
		top.Stop()
	}

	s.mx.Lock()
	s.components = append(s.components, c)
	s.mx.Unlock()
	s.notify(StackPush, c)
}

// Pop removed the top item and returns it.
func (s *Stack) Pop() (Component, bool) {
	if s.Empty() {
		return nil, false
	}

	s.mx.Lock()
	c := s.components[len(s.components)-1]
	s.components = s.components[:len(s.components)-1]
	s.mx.Unlock()
	c.Stop()

	s.notify(StackPop, c)

	return c, true
}

// Clear pops every component. Components uncovered on the way down are not
// notified as the new top.
func (s *Stack) Clear() {
	for {
		s.mx.Lock()
		if len(s.components) == 0 {
			s.mx.Unlock()
			return
		}
		c := s.components[len(s.components)-1]
		s.components = s.components[:len(s.components)-1]
		s.mx.Unlock()

		c.Stop()
		top := s.Top()
		for _, l := range s.listeners {
			l.StackPopped(c, top)
		}
	}
}

// Components returns the stacked components, bottom first.
func (s *Stack) Components() []Component {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return append([]Component(nil), s.components...)
}

// Empty returns true if the stack is empty.
func (s *Stack) Empty() bool {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.components) == 0
}

// Len returns the stack depth.
func (s *Stack) Len() int {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.components)
}

// Top returns the top most item or nil if the stack is empty.
func (s *Stack) Top() Component {
	s.mx.RLock()
	defer s.mx.RUnlock()

	if len(s.components) == 0 {
		return nil
	}
	return s.components[len(s.components)-1]
}

func (s *Stack) notify(a StackAction, c Component) {
	top := s.Top()
	for _, l := range s.listeners {
		switch a {
		case StackPush:
			l.StackPushed(c)
		case StackPop:
			l.StackPopped(c, top)
		}
		if top != nil {
			l.StackTop(top)
		}
	}
}
