// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/spyglass/spyglass/internal/config/data"
	"github.com/spyglass/spyglass/internal/render"
)

func TestColorTag(t *testing.T) {
	uu := map[string]struct {
		c tcell.Color
		e string
	}{
		"default": {c: tcell.ColorDefault, e: "-"},
		"red":     {c: tcell.ColorRed, e: "#ff0000"},
		"rgb":     {c: tcell.NewRGBColor(0x12, 0x34, 0x56), e: "#123456"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, ColorTag(u.c))
		})
	}
}

func TestMarkupCell(t *testing.T) {
	lib := render.NewLibrary(nil)
	m := NewMarkup(NewSkin(data.ThemeDark), 10)

	uu := map[string]struct {
		v render.Value
		e string
	}{
		"plain": {
			v: render.Text("Running"),
			e: "Running",
		},
		"escaped": {
			v: render.Text("[red]"),
			e: "[red[]",
		},
		"badge": {
			v: render.Display(lib.Status(), "Failed", nil),
			e: "[#ff0000::b]Failed[-::-]",
		},
		"unknown-badge": {
			v: render.Display(lib.Status(), "Weird", nil),
			e: "[#808080::b]Weird[-::-]",
		},
		"short": {
			v: render.Display(lib.Default(), "nginx", nil),
			e: "nginx",
		},
		"truncated": {
			v: render.Display(lib.Default(), "nginx-7c5ddbdf54-abcde", nil),
			e: "nginx-7c5…",
		},
		"pills": {
			v: render.Display(lib.Selector(), "app=web,tier=fe", nil),
			e: "[#9370db::]app=web[-::-] [#9370db::]t…[-::-]",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, m.Cell(u.v))
		})
	}
}

func TestNewSkin(t *testing.T) {
	dark, light := NewSkin(data.ThemeDark), NewSkin(data.ThemeLight)

	assert.Equal(t, data.ThemeDark, dark.Theme)
	assert.Equal(t, data.ThemeLight, light.Theme)
	assert.Equal(t, data.ThemeDark, NewSkin("neon").Theme)
	assert.Equal(t, tcell.ColorRed, dark.Badge(render.SeverityDanger))
	assert.Equal(t, light.Badges[render.SeverityUnknown], light.Badge("bozo"))
}
