// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/spyglass/spyglass/internal/config/data"
	"github.com/spyglass/spyglass/internal/resource"
)

// Aliases maps user defined short names to resource keys. Names not found
// here fall back to the taxonomy lookup.
type Aliases struct {
	Alias map[string]string `yaml:"aliases"`

	taxonomy resource.Taxonomy
	mx       sync.RWMutex
}

// NewAliases returns aliases backed by the given taxonomy.
func NewAliases(t resource.Taxonomy) *Aliases {
	return &Aliases{
		Alias:    make(map[string]string),
		taxonomy: t,
	}
}

// Load reads the aliases file. A missing file is not an error. Entries must
// point at a name the taxonomy understands.
func (a *Aliases) Load(path string) error {
	var loaded Aliases
	if _, err := data.LoadYAMLIfExists(path, &loaded); err != nil {
		return err
	}

	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range loaded.Alias {
		if _, ok := a.taxonomy.Lookup(v); !ok {
			return fmt.Errorf("alias %q: unknown resource %q", k, v)
		}
		a.Alias[strings.ToLower(k)] = v
	}

	return nil
}

// Save writes the user aliases to path.
func (a *Aliases) Save(path string) error {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return data.SaveYAML(path, a)
}

// Set registers an alias.
func (a *Aliases) Set(alias, target string) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.Alias[strings.ToLower(alias)] = target
}

// Resolve turns a user supplied name into a resource key.
func (a *Aliases) Resolve(name string) (resource.Key, bool) {
	a.mx.RLock()
	target, ok := a.Alias[strings.ToLower(strings.TrimSpace(name))]
	a.mx.RUnlock()
	if ok {
		name = target
	}

	return a.taxonomy.Lookup(name)
}

// Names returns the user alias names, sorted.
func (a *Aliases) Names() []string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	nn := make([]string, 0, len(a.Alias))
	for k := range a.Alias {
		nn = append(nn, k)
	}
	sort.Strings(nn)

	return nn
}
