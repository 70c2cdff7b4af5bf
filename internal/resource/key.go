// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package resource identifies Kubernetes resource types and holds the
// static sidebar taxonomy.
package resource

import (
	"errors"
	"fmt"
	"strings"
)

// keySep separates the group/version pair from the resource name.
const keySep = "::"

// ErrInvalidKey is returned when a key string cannot be parsed.
var ErrInvalidKey = errors.New("invalid resource key")

// Key identifies a resource type (group, version, resource).
// An empty group is the core API group.
type Key struct {
	Group    string `yaml:"group" json:"group"`
	Version  string `yaml:"version" json:"version"`
	Resource string `yaml:"resource" json:"resource"`
}

// NewKey returns a new resource key.
func NewKey(group, version, res string) Key {
	return Key{Group: group, Version: version, Resource: res}
}

// String returns the key in the form "<group>/<version>::<resource>".
func (k Key) String() string {
	return k.GroupVersion() + keySep + k.Resource
}

// GroupVersion returns "<group>/<version>"; the core group renders as "/v1".
func (k Key) GroupVersion() string {
	return k.Group + "/" + k.Version
}

// IsCore returns true if the key belongs to the core API group.
func (k Key) IsCore() bool {
	return k.Group == ""
}

// IsZero returns true if no field is set.
func (k Key) IsZero() bool {
	return k == Key{}
}

// ParseKey parses a string produced by Key.String.
func ParseKey(s string) (Key, error) {
	gv, res, ok := strings.Cut(s, keySep)
	if !ok || res == "" {
		return Key{}, fmt.Errorf("%w: %q (expected <group>/<version>::<resource>)", ErrInvalidKey, s)
	}
	group, version, ok := strings.Cut(gv, "/")
	if !ok || version == "" {
		return Key{}, fmt.Errorf("%w: %q (missing version)", ErrInvalidKey, s)
	}

	return Key{Group: group, Version: version, Resource: res}, nil
}

// MustParseKey is like ParseKey but panics on malformed input.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}
