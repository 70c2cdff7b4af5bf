// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package model1 holds the tabular data shapes shared by the model and the
// rendering surfaces.
package model1

import "time"

// NAValue is shown for missing cells.
const NAValue = "n/a"

// ResEvent represents a row change between two refreshes.
type ResEvent int

const (
	EventUnchanged ResEvent = 1 << iota
	EventAdd
	EventUpdate
	EventDelete
	EventClear
)

func (e ResEvent) String() string {
	switch e {
	case EventUnchanged:
		return "unchanged"
	case EventAdd:
		return "add"
	case EventUpdate:
		return "update"
	case EventDelete:
		return "delete"
	case EventClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Column is a backend column definition.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Meta identifies the object behind a row.
type Meta struct {
	UID       string            `json:"uid,omitempty"`
	Name      string            `json:"name"`
	Namespace string            `json:"namespace,omitempty"`
	Kind      string            `json:"kind,omitempty"`
	Created   time.Time         `json:"created"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// FQN returns "namespace/name", or the name for cluster scoped objects.
func (m Meta) FQN() string {
	if m.Namespace == "" {
		return m.Name
	}
	return m.Namespace + "/" + m.Name
}

// Table is a raw tabular listing as returned by the backend.
type Table struct {
	Columns []Column
	Rows    Rows
}
