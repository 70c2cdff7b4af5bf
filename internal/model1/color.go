// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package model1

import (
	"github.com/derailed/tcell/v2"
	"github.com/spyglass/spyglass/internal/render"
)

var (
	// ModColor row modified color
	ModColor tcell.Color = tcell.ColorYellow

	// AddColor row added color
	AddColor tcell.Color = tcell.ColorBlue

	// ErrColor row error color
	ErrColor tcell.Color = tcell.ColorRed

	// StdColor row default color
	StdColor tcell.Color = tcell.ColorWhite

	// HighlightColor row highlight color
	HighlightColor tcell.Color = tcell.ColorAqua

	// KillColor row deleted color
	KillColor tcell.Color = tcell.ColorGray

	// CompletedColor row completed color
	CompletedColor tcell.Color = tcell.ColorGreen
)

// SeverityColor maps a status badge severity to a terminal color.
func SeverityColor(s render.Severity) tcell.Color {
	switch s {
	case render.SeverityInfo:
		return tcell.ColorDarkCyan
	case render.SeveritySuccess:
		return CompletedColor
	case render.SeverityWarning:
		return ModColor
	case render.SeverityDanger:
		return ErrColor
	default:
		return KillColor
	}
}

// DefaultColorer returns the row color for an event.
func DefaultColorer(re *RowEvent) tcell.Color {
	switch re.Kind {
	case EventAdd:
		return AddColor
	case EventUpdate:
		return ModColor
	case EventDelete:
		return KillColor
	default:
		return StdColor
	}
}
