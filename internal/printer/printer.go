// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spyglass/spyglass/internal/model1"
	"github.com/spyglass/spyglass/internal/render"
)

// DefaultMaxWidth caps truncating cells.
const DefaultMaxWidth = 40

const (
	ellipsis  = "…"
	columnGap = "   "
)

// Option configures a Printer.
type Option func(*Printer)

// WithTheme selects auto, light or dark styling.
func WithTheme(theme string) Option {
	return func(p *Printer) {
		p.theme = theme
	}
}

// WithMaxWidth sets the width of truncating cells.
func WithMaxWidth(n int) Option {
	return func(p *Printer) {
		if n > 0 {
			p.maxWidth = n
		}
	}
}

// WithFallback sets the renderer of columns without one.
func WithFallback(fn render.Func) Option {
	return func(p *Printer) {
		p.fallback = fn
	}
}

// Printer writes tables to a terminal or pipe.
type Printer struct {
	out      io.Writer
	theme    string
	maxWidth int
	fallback render.Func
	styles   Styles
}

// New returns a printer writing to out. Color is only emitted when out is a
// color capable terminal.
func New(out io.Writer, opts ...Option) *Printer {
	p := Printer{
		out:      out,
		maxWidth: DefaultMaxWidth,
		fallback: render.NewBuilder().Build(),
	}
	for _, opt := range opts {
		opt(&p)
	}
	r := lipgloss.NewRenderer(out)
	p.styles = NewStyles(r, DetectTheme(p.theme))

	return &p
}

// Table writes a header line followed by one line per row.
func (p *Printer) Table(h model1.Header, rows model1.Rows) error {
	lines := make([][]string, 0, len(rows)+1)
	head := make([]string, len(h))
	for i, c := range h {
		head[i] = p.styles.Header.Render(strings.ToUpper(c.Name))
	}
	lines = append(lines, head)
	for _, r := range rows {
		cells := make([]string, len(h))
		for i := range h {
			cells[i] = p.Cell(render.Display(h.RenderAt(i, p.fallback), r.Cell(i), r))
		}
		lines = append(lines, cells)
	}

	widths := make([]int, len(h))
	for _, l := range lines {
		for i, c := range l {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	for _, l := range lines {
		var b strings.Builder
		for i, c := range l {
			b.WriteString(c)
			if i == len(l)-1 {
				break
			}
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c)))
			b.WriteString(columnGap)
		}
		if _, err := fmt.Fprintln(p.out, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}

	return nil
}

// Error writes a styled error line.
func (p *Printer) Error(err error) error {
	_, werr := fmt.Fprintln(p.out, p.styles.Error.Render("Error: "+err.Error()))
	return werr
}

// Cell renders a display value. Badges are colored by severity, label pills
// are space separated and truncating containers are cut to the max width.
func (p *Printer) Cell(v render.Value) string {
	if !v.IsStructured() {
		return p.styles.Cell.Render(v.String())
	}
	n := v.Node()
	w := cellWriter{left: -1}
	if n.HasClass(render.ClassTruncate) {
		w.left = p.maxWidth
	}
	p.walk(&w, n, p.styles.Cell)

	return w.String()
}

func (p *Printer) walk(w *cellWriter, n *render.Node, st lipgloss.Style) {
	pill := n.HasClass(render.ClassPill)
	if sev, ok := n.ClassWithPrefix(render.ClassBackground); ok {
		if pill {
			st = p.styles.Pill
		} else {
			st = p.styles.Badge(render.Severity(sev))
		}
	}
	if pill && w.wrote {
		w.write(" ", p.styles.Cell)
	}
	w.write(n.Text, st)
	for _, c := range n.Children {
		p.walk(w, c, st)
	}
}

// cellWriter accumulates styled fragments within a rune budget. A negative
// budget is unlimited.
type cellWriter struct {
	b     strings.Builder
	left  int
	wrote bool
	cut   bool
}

func (w *cellWriter) write(s string, st lipgloss.Style) {
	if s == "" || w.cut {
		return
	}
	if w.left >= 0 {
		rr := []rune(s)
		if len(rr) > w.left {
			s, w.cut = string(rr[:max(w.left-1, 0)])+ellipsis, true
			w.left = 0
		} else {
			w.left -= len(rr)
		}
	}
	w.b.WriteString(st.Render(s))
	w.wrote = true
}

func (w *cellWriter) String() string {
	return w.b.String()
}
