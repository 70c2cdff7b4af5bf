// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"fmt"

	"github.com/derailed/tcell/v2"

	"github.com/spyglass/spyglass/internal/config/data"
	"github.com/spyglass/spyglass/internal/model1"
	"github.com/spyglass/spyglass/internal/printer"
	"github.com/spyglass/spyglass/internal/render"
)

// Skin holds the colors of one theme.
type Skin struct {
	Theme     string
	Fg        tcell.Color
	Header    tcell.Color
	Border    tcell.Color
	Focus     tcell.Color
	Title     tcell.Color
	Key       tcell.Color
	Pill      tcell.Color
	Dim       tcell.Color
	Highlight tcell.Color
	Badges    map[render.Severity]tcell.Color
}

// DetectTheme resolves the auto theme from the terminal background.
func DetectTheme(setting string) string {
	return printer.DetectTheme(setting)
}

// NewSkin returns the skin of a theme setting. Auto is resolved from the
// terminal and unknown themes use the dark skin.
func NewSkin(setting string) Skin {
	if DetectTheme(setting) == data.ThemeLight {
		return lightSkin()
	}
	return darkSkin()
}

func darkSkin() Skin {
	bb := make(map[render.Severity]tcell.Color, 5)
	for _, s := range []render.Severity{
		render.SeverityInfo,
		render.SeveritySuccess,
		render.SeverityWarning,
		render.SeverityDanger,
		render.SeverityUnknown,
	} {
		bb[s] = model1.SeverityColor(s)
	}

	return Skin{
		Theme:     data.ThemeDark,
		Fg:        model1.StdColor,
		Header:    tcell.ColorYellow,
		Border:    tcell.ColorDodgerBlue,
		Focus:     tcell.ColorAqua,
		Title:     tcell.ColorAqua,
		Key:       tcell.ColorYellow,
		Pill:      tcell.ColorMediumPurple,
		Dim:       tcell.ColorGray,
		Highlight: model1.HighlightColor,
		Badges:    bb,
	}
}

func lightSkin() Skin {
	return Skin{
		Theme:     data.ThemeLight,
		Fg:        tcell.ColorBlack,
		Header:    tcell.ColorNavy,
		Border:    tcell.ColorSteelBlue,
		Focus:     tcell.ColorTeal,
		Title:     tcell.ColorNavy,
		Key:       tcell.ColorDarkMagenta,
		Pill:      tcell.ColorPurple,
		Dim:       tcell.ColorDimGray,
		Highlight: tcell.ColorTeal,
		Badges: map[render.Severity]tcell.Color{
			render.SeverityInfo:    tcell.ColorTeal,
			render.SeveritySuccess: tcell.ColorGreen,
			render.SeverityWarning: tcell.ColorDarkOrange,
			render.SeverityDanger:  tcell.ColorDarkRed,
			render.SeverityUnknown: tcell.ColorDimGray,
		},
	}
}

// Badge returns the color of a severity.
func (s Skin) Badge(sev render.Severity) tcell.Color {
	if c, ok := s.Badges[sev]; ok {
		return c
	}
	return s.Badges[render.SeverityUnknown]
}

// ColorTag returns the tview tag name of a color.
func ColorTag(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "-"
	}
	hex := c.Hex()
	if hex < 0 {
		return "-"
	}
	return fmt.Sprintf("#%06x", hex)
}
