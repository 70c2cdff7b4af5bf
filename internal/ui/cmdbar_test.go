// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/spyglass/spyglass/internal/config/data"
	"github.com/spyglass/spyglass/internal/resource"
)

var workloads = resource.Taxonomy{
	{Name: "Workload", Keys: []resource.Key{resource.Pods, resource.Deployments}},
}

func newTestCompleter() *Completer {
	c := NewCompleter(workloads)
	c.AddCommands([]string{"ctx", "ns", "q"}, false)
	c.AddCommands([]string{"dp"}, true)
	c.SetArgs("ctx", []string{"prod", "dev"})
	c.SetNamespaces("ns", []string{"kube-system", "default", "all"})

	return c
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(c *CmdBar, s string) {
	for _, r := range s {
		c.keyboard(runeKey(r))
	}
}

func TestCompleterCommands(t *testing.T) {
	c := NewCompleter(workloads)

	assert.Equal(t, []string{"deploy", "deployments", "po", "pods"}, c.Commands())
	assert.Equal(t, []string{"po", "pods"}, c.Complete("p"))
	assert.Equal(t, []string{"pods"}, c.Complete("PO"))
	assert.Empty(t, c.Complete("x"))
	assert.Empty(t, c.Complete(""))
}

func TestCompleterArgs(t *testing.T) {
	c := newTestCompleter()

	uu := map[string]struct {
		line string
		e    []string
	}{
		"context":          {line: "ctx ", e: []string{"ctx dev", "ctx prod"}},
		"context-prefix":   {line: "ctx p", e: []string{"ctx prod"}},
		"namespace":        {line: "ns ", e: []string{"ns all", "ns default", "ns kube-system"}},
		"resource":         {line: "po k", e: []string{"po kube-system"}},
		"user-alias":       {line: "dp d", e: []string{"dp default"}},
		"no-args":          {line: "q d"},
		"third-word":       {line: "po kube-system x"},
		"exact-is-dropped": {line: "ctx dev"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, c.Complete(u.line))
		})
	}
}

func TestCmdBarCommand(t *testing.T) {
	c := NewCmdBar(NewSkin(data.ThemeDark), newTestCompleter())

	var ran string
	var active []bool
	c.SetHandlers(CmdBarHandlers{
		Command: func(s string) { ran = s },
		Active:  func(b bool) { active = append(active, b) },
	})

	c.Activate(InputCommand)
	assert.True(t, c.IsActive())
	typeText(c, "p")
	assert.Equal(t, "po", c.Hint())
	assert.Contains(t, c.GetText(true), "po")

	c.keyboard(key(tcell.KeyDown))
	assert.Equal(t, "pods", c.Hint())
	c.keyboard(key(tcell.KeyUp))
	assert.Equal(t, "po", c.Hint())

	c.keyboard(key(tcell.KeyTab))
	assert.Equal(t, "po ", c.Line())
	assert.Equal(t, "po all", c.Hint())

	typeText(c, "k")
	c.keyboard(key(tcell.KeyTab))
	assert.Equal(t, "po kube-system", c.Line())
	assert.Empty(t, c.Hint())

	c.keyboard(key(tcell.KeyEnter))
	assert.Equal(t, ":po kube-system", ran)
	assert.False(t, c.IsActive())
	assert.Equal(t, []bool{true, false}, active)
	assert.Equal(t, []string{"po kube-system"}, c.History())
}

func TestCmdBarHistory(t *testing.T) {
	c := NewCmdBar(NewSkin(data.ThemeDark), newTestCompleter())
	for _, cmd := range []string{"svc", "svc", "ctx dev"} {
		c.Activate(InputCommand)
		typeText(c, cmd)
		c.keyboard(key(tcell.KeyEnter))
	}
	assert.Equal(t, []string{"svc", "ctx dev"}, c.History())

	c.Activate(InputCommand)
	c.keyboard(key(tcell.KeyUp))
	assert.Equal(t, "ctx dev", c.Line())
	c.keyboard(key(tcell.KeyUp))
	assert.Equal(t, "svc", c.Line())
	c.keyboard(key(tcell.KeyDown))
	c.keyboard(key(tcell.KeyDown))
	assert.Empty(t, c.Line())
}

func TestCmdBarEditing(t *testing.T) {
	c := NewCmdBar(NewSkin(data.ThemeDark), newTestCompleter())
	c.Activate(InputCommand)

	typeText(c, "po kube")
	c.keyboard(key(tcell.KeyCtrlW))
	assert.Equal(t, "po ", c.Line())
	c.keyboard(key(tcell.KeyBackspace2))
	assert.Equal(t, "po", c.Line())
	c.keyboard(key(tcell.KeyCtrlU))
	assert.Empty(t, c.Line())
	assert.Empty(t, c.Hint())
}

func TestCmdBarFilter(t *testing.T) {
	c := NewCmdBar(NewSkin(data.ThemeDark), nil)

	var filters []string
	c.SetHandlers(CmdBarHandlers{Filter: func(s string) { filters = append(filters, s) }})

	c.Activate(InputFilter)
	typeText(c, "we")
	c.keyboard(key(tcell.KeyBackspace2))
	assert.Empty(t, c.Hint())
	assert.Equal(t, []string{"w", "we", "w"}, filters)

	c.keyboard(key(tcell.KeyEsc))
	assert.Equal(t, []string{"w", "we", "w", ""}, filters)
	assert.Equal(t, InputNone, c.Mode())

	c.Activate(InputFilter)
	typeText(c, "db")
	c.keyboard(key(tcell.KeyEnter))
	assert.Equal(t, "db", c.Filter())

	c.ClearFilter()
	assert.Empty(t, c.Filter())
	assert.Equal(t, "", filters[len(filters)-1])
}

func TestCmdBarInactivePassesThrough(t *testing.T) {
	c := NewCmdBar(NewSkin(data.ThemeDark), nil)
	evt := runeKey('x')

	assert.Equal(t, evt, c.keyboard(evt))
}
