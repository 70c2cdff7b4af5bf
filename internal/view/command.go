// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package view

import (
	"fmt"
	"strings"

	"github.com/spyglass/spyglass/internal/resource"
	"github.com/spyglass/spyglass/internal/ui"
)

// Built in commands.
const (
	cmdQuit      = "q"
	cmdQuitLong  = "quit"
	cmdHelp      = "help"
	cmdNamespace = "ns"
	cmdContext   = "ctx"
)

// Command interprets command bar input.
type Command struct {
	app *App
}

// NewCommand returns a command interpreter.
func NewCommand(app *App) *Command {
	return &Command{app: app}
}

// Register adds the built ins and the user aliases to comp. Resource names
// and their short aliases come from the taxonomy.
func (c *Command) Register(comp *ui.Completer) {
	comp.AddCommands([]string{cmdQuit, cmdQuitLong, cmdHelp, cmdNamespace, cmdContext}, false)
	comp.AddCommands(c.app.deps.Aliases.Names(), true)
}

// Run executes a command. Resource commands accept an optional namespace,
// e.g. `:po kube-system`. `:ns <name>` switches namespace while a bare `:ns`
// lists namespaces, and `:ctx` behaves the same way for kube contexts.
func (c *Command) Run(cmd string) error {
	cmd = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), ":"))
	if cmd == "" {
		return c.Show(resource.Pods)
	}
	ff := strings.Fields(cmd)
	name, args := strings.ToLower(ff[0]), ff[1:]

	switch name {
	case cmdQuit, cmdQuitLong:
		c.app.Stop()
		return nil
	case cmdHelp:
		c.app.showHelp()
		return nil
	case cmdNamespace:
		if len(args) > 0 {
			c.app.SwitchNamespace(args[0])
			c.app.Flash().Infof("Switched to namespace %s", args[0])
			return nil
		}
	case cmdContext:
		if len(args) > 0 {
			return c.app.SwitchContext(args[0])
		}
		return c.contextView()
	}

	key, ok := c.app.deps.Aliases.Resolve(name)
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	if len(args) > 0 {
		c.app.SwitchNamespace(args[0])
	}

	return c.Show(key)
}

// Show replaces the view stack with a browser of k.
func (c *Command) Show(k resource.Key) error {
	b := NewBrowser(c.app, k)
	if err := b.Init(c.app.Context()); err != nil {
		return fmt.Errorf("init %s view: %w", k, err)
	}
	c.app.Content.Stack.Clear()
	c.app.Content.Push(b)

	return nil
}

func (c *Command) contextView() error {
	if c.app.deps.Contexts == nil {
		return fmt.Errorf("context listing is not available")
	}
	v := NewContextSwitcher(c.app)
	if err := v.Init(c.app.Context()); err != nil {
		return err
	}
	c.app.Content.Push(v)

	return nil
}
