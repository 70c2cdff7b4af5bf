// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"slices"
	"strings"
	"sync"

	"github.com/fvbommel/sortorder"

	"github.com/spyglass/spyglass/internal/resource"
)

// Completer proposes full command lines for a partially typed one. The
// first word completes against command names, the second against the
// values registered for that command.
type Completer struct {
	commands  []string
	resources map[string]struct{}
	args      map[string][]string
	mx        sync.RWMutex
}

// NewCompleter seeds the command names with the taxonomy resources and
// their short aliases.
func NewCompleter(tx resource.Taxonomy) *Completer {
	c := Completer{
		resources: make(map[string]struct{}),
		args:      make(map[string][]string),
	}
	known := make(map[resource.Key]struct{})
	for _, k := range tx.Keys() {
		known[k] = struct{}{}
		c.resources[k.Resource] = struct{}{}
	}
	for a, k := range resource.DefaultAliases {
		if _, ok := known[k]; ok {
			c.resources[a] = struct{}{}
		}
	}
	for r := range c.resources {
		c.commands = append(c.commands, r)
	}
	slices.SortFunc(c.commands, naturalCmp)

	return &c
}

// AddCommands registers extra command names, e.g. built-ins or user aliases.
// Resource aliases share the namespace values of resource commands.
func (c *Completer) AddCommands(cmds []string, resources bool) {
	c.mx.Lock()
	defer c.mx.Unlock()

	for _, cmd := range cmds {
		cmd = strings.ToLower(cmd)
		if resources {
			c.resources[cmd] = struct{}{}
		}
		if !slices.Contains(c.commands, cmd) {
			c.commands = append(c.commands, cmd)
		}
	}
	slices.SortFunc(c.commands, naturalCmp)
}

// Commands returns the known command names in natural order.
func (c *Completer) Commands() []string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return slices.Clone(c.commands)
}

// SetArgs replaces the argument values of a command.
func (c *Completer) SetArgs(cmd string, values []string) {
	vv := slices.Clone(values)
	slices.SortFunc(vv, naturalCmp)

	c.mx.Lock()
	defer c.mx.Unlock()
	c.args[strings.ToLower(cmd)] = slices.Compact(vv)
}

// SetNamespaces makes namespace names the argument values of every resource
// command and of cmd, usually `ns`.
func (c *Completer) SetNamespaces(cmd string, nss []string) {
	c.SetArgs(argNamespace, nss)
	c.SetArgs(cmd, nss)
}

const argNamespace = "\x00namespace"

// Complete returns the candidate lines extending line, excluding line itself.
func (c *Completer) Complete(line string) []string {
	line = strings.TrimLeft(strings.ToLower(line), " ")
	if line == "" {
		return nil
	}

	c.mx.RLock()
	defer c.mx.RUnlock()

	cmd, arg, hasArg := strings.Cut(line, " ")
	if !hasArg {
		return prefixed(c.commands, cmd, "")
	}
	if strings.Contains(arg, " ") {
		return nil
	}
	values, ok := c.args[cmd]
	if !ok {
		if _, res := c.resources[cmd]; res {
			values = c.args[argNamespace]
		}
	}

	return prefixed(values, arg, cmd+" ")
}

func prefixed(values []string, prefix, lead string) []string {
	var out []string
	for _, v := range values {
		if v != prefix && strings.HasPrefix(strings.ToLower(v), prefix) {
			out = append(out, lead+v)
		}
	}

	return out
}

func naturalCmp(a, b string) int {
	switch {
	case a == b:
		return 0
	case sortorder.NaturalLess(a, b):
		return -1
	default:
		return 1
	}
}
