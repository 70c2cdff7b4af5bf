// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"fmt"

	"github.com/derailed/tview"
)

// Pages shows the top of a component stack.
type Pages struct {
	*tview.Pages
	*Stack
}

// NewPages returns a new pages manager.
func NewPages() *Pages {
	p := Pages{
		Pages: tview.NewPages(),
		Stack: NewStack(),
	}
	p.Stack.AddListener(&p)

	return &p
}

// Current returns the top component.
func (p *Pages) Current() Component {
	return p.Stack.Top()
}

// StackPushed adds and shows the component page.
func (p *Pages) StackPushed(c Component) {
	p.AddPage(componentID(c), c, true, true)
}

// StackPopped removes the old page and shows the new top.
func (p *Pages) StackPopped(o, top Component) {
	p.RemovePage(componentID(o))
	if top != nil {
		p.SwitchToPage(componentID(top))
	}
}

// StackTop notifies the top component.
func (*Pages) StackTop(Component) {}

func componentID(c Component) string {
	return fmt.Sprintf("%s-%p", c.Name(), c)
}
