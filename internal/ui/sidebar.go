// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/spyglass/spyglass/internal/i18n"
	"github.com/spyglass/spyglass/internal/resource"
)

// Sidebar lists the resource taxonomy by category.
type Sidebar struct {
	*tview.TreeView

	skin     Skin
	nodes    map[resource.Key]*tview.TreeNode
	selectFn func(resource.Key)
}

// NewSidebar builds the tree of taxonomy t. Resource names are translated
// when tr is set.
func NewSidebar(t resource.Taxonomy, tr *i18n.Translator, skin Skin) *Sidebar {
	s := Sidebar{
		TreeView: tview.NewTreeView(),
		skin:     skin,
		nodes:    make(map[resource.Key]*tview.TreeNode),
	}

	root := tview.NewTreeNode("")
	for _, c := range t {
		cat := tview.NewTreeNode(c.Name).
			SetColor(skin.Header).
			SetSelectable(false)
		for _, k := range c.Keys {
			name := k.Resource
			if tr != nil {
				name = tr.Resource(k)
			}
			n := tview.NewTreeNode(name).
				SetReference(k).
				SetColor(skin.Fg)
			cat.AddChild(n)
			s.nodes[k] = n
		}
		root.AddChild(cat)
	}

	s.SetRoot(root)
	s.SetTopLevel(1)
	s.SetGraphics(false)
	s.SetBorder(true)
	s.SetBorderColor(skin.Border)
	s.SetBackgroundColor(tcell.ColorDefault)
	s.SetSelectedFunc(s.selected)

	return &s
}

// SetSelectFn sets the callback invoked when a resource is picked.
func (s *Sidebar) SetSelectFn(fn func(resource.Key)) {
	s.selectFn = fn
}

// Highlight marks k as the current resource. Unknown keys are ignored.
func (s *Sidebar) Highlight(k resource.Key) bool {
	n, ok := s.nodes[k]
	if !ok {
		return false
	}
	s.SetCurrentNode(n)
	return true
}

// Current returns the highlighted resource.
func (s *Sidebar) Current() (resource.Key, bool) {
	n := s.GetCurrentNode()
	if n == nil {
		return resource.Key{}, false
	}
	k, ok := n.GetReference().(resource.Key)
	return k, ok
}

func (s *Sidebar) selected(n *tview.TreeNode) {
	k, ok := n.GetReference().(resource.Key)
	if !ok || s.selectFn == nil {
		return
	}
	s.selectFn(k)
}
