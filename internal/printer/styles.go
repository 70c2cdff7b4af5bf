// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package printer renders projected tables as plain terminal text for the
// headless commands.
package printer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spyglass/spyglass/internal/config/data"
	"github.com/spyglass/spyglass/internal/render"
)

// DetectTheme resolves the auto theme from the terminal background.
func DetectTheme(setting string) string {
	switch setting {
	case data.ThemeLight, data.ThemeDark:
		return setting
	}
	if lipgloss.HasDarkBackground() {
		return data.ThemeDark
	}
	return data.ThemeLight
}

// Styles holds the lipgloss styles for one theme.
type Styles struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Pill   lipgloss.Style
	Error  lipgloss.Style
	Badges map[render.Severity]lipgloss.Style
}

// Badge returns the badge style of a severity.
func (s Styles) Badge(sev render.Severity) lipgloss.Style {
	if st, ok := s.Badges[sev]; ok {
		return st
	}
	return s.Badges[render.SeverityUnknown]
}

type palette struct {
	header, pill, err                      string
	info, success, warning, danger, absent string
}

var palettes = map[string]palette{
	data.ThemeDark: {
		header: "#8be9fd", pill: "#bd93f9", err: "#ff5555",
		info: "#8be9fd", success: "#50fa7b", warning: "#f1fa8c", danger: "#ff5555", absent: "#6272a4",
	},
	data.ThemeLight: {
		header: "#005f87", pill: "#5f00af", err: "#af0000",
		info: "#005f87", success: "#008700", warning: "#af8700", danger: "#af0000", absent: "#767676",
	},
}

// NewStyles builds the styles of a resolved theme.
func NewStyles(r *lipgloss.Renderer, theme string) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[data.ThemeDark]
	}
	base := r.NewStyle()
	badge := func(c string) lipgloss.Style {
		return base.Copy().Foreground(lipgloss.Color(c)).Bold(true)
	}

	return Styles{
		Header: base.Copy().Foreground(lipgloss.Color(p.header)).Bold(true),
		Cell:   base,
		Pill:   base.Copy().Foreground(lipgloss.Color(p.pill)),
		Error:  base.Copy().Foreground(lipgloss.Color(p.err)).Bold(true),
		Badges: map[render.Severity]lipgloss.Style{
			render.SeverityInfo:    badge(p.info),
			render.SeveritySuccess: badge(p.success),
			render.SeverityWarning: badge(p.warning),
			render.SeverityDanger:  badge(p.danger),
			render.SeverityUnknown: badge(p.absent),
		},
	}
}
