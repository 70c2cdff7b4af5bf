// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// InputMode tells what the command bar is editing.
type InputMode int

const (
	// InputNone leaves keys to the views.
	InputNone InputMode = iota
	// InputCommand edits a `:` command line.
	InputCommand
	// InputFilter edits a `/` row filter, applied as typed.
	InputFilter
)

var prompts = map[InputMode]string{
	InputNone:    "🔭>",
	InputCommand: "🔭:",
	InputFilter:  "🔍/",
}

const maxHistory = 50

// CmdBarHandlers receives the command bar outcomes.
type CmdBarHandlers struct {
	// Command runs an entered command line, prefixed with `:`.
	Command func(string)
	// Filter receives the filter on each edit, and "" when it is dropped.
	Filter func(string)
	// Active reports entering and leaving input mode.
	Active func(bool)
}

// CmdBar edits commands and filters. Commands show the first completion as
// dimmed ghost text.
type CmdBar struct {
	*tview.TextView

	skin      Skin
	completer *Completer
	handlers  CmdBarHandlers
	bindings  map[tcell.Key]func()

	mode    InputMode
	line    []rune
	hints   []string
	hint    int
	filter  string
	history []string
	recall  int
	mx      sync.Mutex
}

// NewCmdBar returns an idle command bar completing through completer.
func NewCmdBar(skin Skin, completer *Completer) *CmdBar {
	if completer == nil {
		completer = NewCompleter(nil)
	}
	c := CmdBar{
		TextView:  tview.NewTextView(),
		skin:      skin,
		completer: completer,
	}
	c.bindings = map[tcell.Key]func(){
		tcell.KeyEnter:      c.submit,
		tcell.KeyEsc:        c.abandon,
		tcell.KeyTab:        c.accept,
		tcell.KeyRight:      c.accept,
		tcell.KeyUp:         func() { c.cycle(-1) },
		tcell.KeyDown:       func() { c.cycle(1) },
		tcell.KeyBackspace:  func() { c.edit(dropRune) },
		tcell.KeyBackspace2: func() { c.edit(dropRune) },
		tcell.KeyDelete:     func() { c.edit(dropRune) },
		tcell.KeyCtrlW:      func() { c.edit(dropWord) },
		tcell.KeyCtrlU:      func() { c.edit(func([]rune) []rune { return nil }) },
	}

	c.SetBorder(true)
	c.SetBorderColor(skin.Border)
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextColor(skin.Fg)
	c.SetDynamicColors(true)
	c.SetWrap(false)
	c.SetInputCapture(c.keyboard)
	c.draw()

	return &c
}

// SetHandlers installs the outcome callbacks.
func (c *CmdBar) SetHandlers(h CmdBarHandlers) {
	c.handlers = h
}

// Completer returns the command completer.
func (c *CmdBar) Completer() *Completer {
	return c.completer
}

func (c *CmdBar) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if !c.IsActive() {
		return evt
	}
	if evt.Key() == tcell.KeyRune {
		r := evt.Rune()
		c.edit(func(l []rune) []rune { return append(l, r) })
		return nil
	}
	if fn, ok := c.bindings[evt.Key()]; ok {
		fn()
		return nil
	}

	return evt
}

func dropRune(l []rune) []rune {
	if len(l) == 0 {
		return l
	}
	return l[:len(l)-1]
}

func dropWord(l []rune) []rune {
	s := strings.TrimRight(string(l), " ")
	if i := strings.LastIndex(s, " "); i >= 0 {
		return []rune(s[:i+1])
	}
	return nil
}

// edit applies fn to the line, then refreshes hints and the live filter.
func (c *CmdBar) edit(fn func([]rune) []rune) {
	c.mx.Lock()
	c.line = fn(c.line)
	line, mode := string(c.line), c.mode
	c.setHintsLocked(line)
	c.recall = len(c.history)
	c.mx.Unlock()

	c.draw()
	if mode == InputFilter && c.handlers.Filter != nil {
		c.handlers.Filter(line)
	}
}

func (c *CmdBar) setHintsLocked(line string) {
	c.hints, c.hint = nil, 0
	if c.mode == InputCommand {
		c.hints = c.completer.Complete(line)
	}
}

// accept takes the current hint. A completed command name gets a trailing
// space so its arguments complete next.
func (c *CmdBar) accept() {
	c.mx.Lock()
	if len(c.hints) == 0 {
		c.mx.Unlock()
		return
	}
	line := c.hints[c.hint]
	if !strings.Contains(line, " ") && len(c.completer.Complete(line+" ")) > 0 {
		line += " "
	}
	c.line = []rune(line)
	c.setHintsLocked(line)
	c.mx.Unlock()

	c.draw()
}

// cycle moves through the hints, or through the command history when there
// are none.
func (c *CmdBar) cycle(step int) {
	c.mx.Lock()
	switch {
	case len(c.hints) > 0:
		c.hint = (c.hint + step + len(c.hints)) % len(c.hints)
	case c.mode == InputCommand && len(c.history) > 0:
		c.recall = min(max(c.recall+step, 0), len(c.history))
		c.line = nil
		if c.recall < len(c.history) {
			c.line = []rune(c.history[c.recall])
		}
	}
	c.mx.Unlock()

	c.draw()
}

func (c *CmdBar) submit() {
	c.mx.Lock()
	mode, line := c.mode, strings.TrimSpace(string(c.line))
	switch mode {
	case InputCommand:
		if line != "" && (len(c.history) == 0 || c.history[len(c.history)-1] != line) {
			c.history = append(c.history, line)
			if len(c.history) > maxHistory {
				c.history = c.history[1:]
			}
		}
	case InputFilter:
		c.filter = line
	}
	c.mx.Unlock()

	c.Deactivate()
	if mode == InputCommand && line != "" && c.handlers.Command != nil {
		c.handlers.Command(":" + line)
	}
}

func (c *CmdBar) abandon() {
	c.mx.Lock()
	mode := c.mode
	if mode == InputFilter {
		c.filter = ""
	}
	c.mx.Unlock()

	c.Deactivate()
	if mode == InputFilter && c.handlers.Filter != nil {
		c.handlers.Filter("")
	}
}

func (c *CmdBar) draw() {
	c.mx.Lock()
	line, mode := string(c.line), c.mode
	var ghost string
	if len(c.hints) > 0 {
		if h := []rune(c.hints[c.hint]); len(h) > len(c.line) {
			ghost = string(h[len(c.line):])
		}
	}
	c.mx.Unlock()

	c.Clear()
	fmt.Fprintf(c.TextView, "%s [::b]%s[::-]", prompts[mode], tview.Escape(line))
	if ghost != "" {
		fmt.Fprintf(c.TextView, "[%s::]%s[-::]", ColorTag(c.skin.Dim), tview.Escape(ghost))
	}
}

// Activate starts editing in mode with an empty line.
func (c *CmdBar) Activate(mode InputMode) {
	c.setMode(mode)
	if c.handlers.Active != nil {
		c.handlers.Active(true)
	}
}

// Deactivate returns to idle.
func (c *CmdBar) Deactivate() {
	c.setMode(InputNone)
	if c.handlers.Active != nil {
		c.handlers.Active(false)
	}
}

func (c *CmdBar) setMode(mode InputMode) {
	c.mx.Lock()
	c.mode, c.line, c.hints, c.hint = mode, nil, nil, 0
	c.recall = len(c.history)
	c.mx.Unlock()

	c.draw()
}

// IsActive returns true while editing.
func (c *CmdBar) IsActive() bool {
	return c.Mode() != InputNone
}

// Mode returns the edit mode.
func (c *CmdBar) Mode() InputMode {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.mode
}

// Line returns the line being edited.
func (c *CmdBar) Line() string {
	c.mx.Lock()
	defer c.mx.Unlock()
	return string(c.line)
}

// Hint returns the completion offered as ghost text.
func (c *CmdBar) Hint() string {
	c.mx.Lock()
	defer c.mx.Unlock()
	if len(c.hints) == 0 {
		return ""
	}
	return c.hints[c.hint]
}

// History returns the entered commands, oldest first.
func (c *CmdBar) History() []string {
	c.mx.Lock()
	defer c.mx.Unlock()
	return append([]string(nil), c.history...)
}

// Filter returns the confirmed filter.
func (c *CmdBar) Filter() string {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.filter
}

// ClearFilter drops the confirmed filter.
func (c *CmdBar) ClearFilter() {
	c.mx.Lock()
	c.filter = ""
	c.mx.Unlock()

	if c.handlers.Filter != nil {
		c.handlers.Filter("")
	}
}
