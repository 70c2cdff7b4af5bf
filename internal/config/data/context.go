// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package data

import (
	"fmt"
	"path/filepath"
	"sync"
)

// DefaultView is the resource shown when a context has no saved view.
const DefaultView = "/v1::pods"

// ContextState is the per kube context session state, persisted under
// {root}/{context}/state.yaml.
type ContextState struct {
	Context   string `yaml:"context"`
	Namespace string `yaml:"namespace"`
	Active    string `yaml:"active"`
}

// NewContextState returns the default state for a context.
func NewContextState(kubeContext string) *ContextState {
	return &ContextState{Context: kubeContext, Active: DefaultView}
}

// Validate fills in missing fields.
func (s *ContextState) Validate() {
	if s.Active == "" {
		s.Active = DefaultView
	}
}

// Dir manages the per context state directory.
type Dir struct {
	root string
	mx   sync.Mutex
}

// NewDir returns a Dir rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the directory root.
func (d *Dir) Root() string {
	return d.root
}

// StatePath returns the state file path of a context.
func (d *Dir) StatePath(kubeContext string) string {
	name := SanitizeFileName(kubeContext)
	if name == "" {
		name = "default"
	}
	return filepath.Join(d.root, name, "state.yaml")
}

// Load reads the saved state of a context, or its defaults when none was saved.
func (d *Dir) Load(kubeContext string) (*ContextState, error) {
	d.mx.Lock()
	defer d.mx.Unlock()

	s := NewContextState(kubeContext)
	if _, err := LoadYAMLIfExists(d.StatePath(kubeContext), s); err != nil {
		return nil, fmt.Errorf("load context state: %w", err)
	}
	s.Context = kubeContext
	s.Validate()

	return s, nil
}

// Save persists a context state.
func (d *Dir) Save(s *ContextState) error {
	if s == nil {
		return fmt.Errorf("cannot save nil context state")
	}
	d.mx.Lock()
	defer d.mx.Unlock()

	return SaveYAML(d.StatePath(s.Context), s)
}
