// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"context"
	"sort"
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyglass/spyglass/internal/config/data"
	"github.com/spyglass/spyglass/internal/resource"
)

type comp struct {
	*tview.Box

	name    string
	stopped int
}

func newComp(n string) *comp {
	return &comp{Box: tview.NewBox(), name: n}
}

func (c *comp) Name() string { return c.name }

func (c *comp) Init(context.Context) error { return nil }

func (c *comp) Start() {}

func (c *comp) Stop() { c.stopped++ }

func (c *comp) Hints() MenuHints {
	return MenuHints{{Mnemonic: "x", Description: c.name, Visible: true}}
}

func TestStack(t *testing.T) {
	s := NewStack()
	crumbs := NewCrumbs(NewSkin(data.ThemeDark))
	s.AddListener(crumbs)

	a, b := newComp("pods"), newComp("services")
	s.Push(a)
	s.Push(b)

	assert.Equal(t, 1, a.stopped)
	assert.Equal(t, []string{"pods", "services"}, s.Flatten())
	assert.Equal(t, []string{"pods", "services"}, crumbs.Crumbs())
	assert.Equal(t, b, s.Top())

	c, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, b, c)
	assert.Equal(t, 1, b.stopped)
	assert.Equal(t, []string{"pods"}, crumbs.Crumbs())

	s.Clear()
	assert.True(t, s.Empty())
	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestPages(t *testing.T) {
	p := NewPages()
	a, b := newComp("pods"), newComp("services")

	p.Push(a)
	p.Push(b)
	assert.Equal(t, 2, p.GetPageCount())
	assert.Equal(t, b, p.Current())

	p.Pop()
	assert.Equal(t, 1, p.GetPageCount())
	name, _ := p.GetFrontPage()
	assert.Equal(t, componentID(a), name)
}

func TestKeyActions(t *testing.T) {
	aa := NewKeyActions()
	aa.Bulk(KeyMap{
		KeyR:           NewKeyAction("Reload", nil, true),
		tcell.KeyEnter: NewKeyAction("View", nil, true),
		tcell.KeyCtrlR: NewKeyAction("Reload", nil, false),
	})

	assert.Equal(t, 3, aa.Len())
	assert.Equal(t, MenuHints{
		{Mnemonic: "Enter", Description: "View", Visible: true},
		{Mnemonic: "r", Description: "Reload", Visible: true},
	}, aa.Hints())

	aa.Delete(KeyR)
	_, ok := aa.Get(KeyR)
	assert.False(t, ok)
}

func TestAsKey(t *testing.T) {
	assert.Equal(t, KeySlash, AsKey(tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone)))
	assert.Equal(t, tcell.KeyEsc, AsKey(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone)))
}

func TestMenuHintsSort(t *testing.T) {
	hh := MenuHints{
		{Mnemonic: "r", Description: "Reload"},
		{Mnemonic: "1", Description: "default"},
		{Mnemonic: "0", Description: "all"},
		{Mnemonic: "?", Description: "Help"},
	}
	sort.Sort(hh)

	mm := make([]string, 0, len(hh))
	for _, h := range hh {
		mm = append(mm, h.Mnemonic)
	}
	assert.Equal(t, []string{"0", "1", "?", "r"}, mm)
}

func TestMenuHydrate(t *testing.T) {
	m := NewMenu(NewSkin(data.ThemeDark))
	m.HydrateMenu(MenuHints{
		{Mnemonic: "r", Description: "Reload", Visible: true},
		{Mnemonic: "x", Description: "Hidden"},
	})

	assert.Equal(t, 1, m.GetRowCount())
	assert.Equal(t, " [#ffff00::b]<r>[-::-] Reload ", m.GetCell(0, 0).Text)
}

func TestSidebar(t *testing.T) {
	s := NewSidebar(resource.DefaultTaxonomy, nil, NewSkin(data.ThemeDark))
	assert.Len(t, s.GetRoot().GetChildren(), len(resource.DefaultTaxonomy))

	require.True(t, s.Highlight(resource.Services))
	k, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, resource.Services, k)
	assert.False(t, s.Highlight(resource.NewKey("x", "v1", "widgets")))

	var picked resource.Key
	s.SetSelectFn(func(k resource.Key) { picked = k })
	s.selected(s.nodes[resource.Pods])
	assert.Equal(t, resource.Pods, picked)

	s.selected(s.GetRoot().GetChildren()[0])
	assert.Equal(t, resource.Pods, picked)
}
