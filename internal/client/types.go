// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoBackend is returned when no backend URL is configured.
var ErrNoBackend = errors.New("no backend configured")

// Connect error codes with special handling.
const (
	CodeCanceled         = "canceled"
	CodeDeadlineExceeded = "deadline_exceeded"
	CodeUnavailable      = "unavailable"
	CodeNotFound         = "not_found"
)

// StatusError is a connect error returned by the backend.
type StatusError struct {
	HTTPStatus int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: %s (http %d)", e.Code, e.HTTPStatus)
	}
	return fmt.Sprintf("backend error: %s: %s", e.Code, e.Message)
}

// Unwrap maps connect cancellation codes onto context errors.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case CodeCanceled:
		return context.Canceled
	case CodeDeadlineExceeded:
		return context.DeadlineExceeded
	default:
		return nil
	}
}

// API is one discovered group version.
type API struct {
	Group     string        `json:"group"`
	Version   string        `json:"version"`
	Resources []APIResource `json:"resources"`
}

// APIResource is a discovered resource type.
type APIResource struct {
	Name       string `json:"name"`
	Namespaced bool   `json:"namespaced"`
}

type empty struct{}

type contextsReply struct {
	Contexts []string `json:"contexts"`
}

type contextReply struct {
	Context string `json:"context"`
}

type discoverRequest struct {
	Context string `json:"context"`
}

type discoverReply struct {
	Apis map[string]API `json:"apis"`
}

type gvr struct {
	Group    string `json:"group"`
	Version  string `json:"version"`
	Resource string `json:"resource"`
}

type listRequest struct {
	Context   string  `json:"context"`
	Gvr       gvr     `json:"gvr"`
	Namespace *string `json:"namespace,omitempty"`
}

type gvk struct {
	Group   string `json:"group"`
	Version string `json:"version"`
	Kind    string `json:"kind"`
}

type wireResource struct {
	Name      string          `json:"name"`
	Namespace string          `json:"namespace"`
	Gvk       gvk             `json:"gvk"`
	Raw       json.RawMessage `json:"raw"`
	Created   json.RawMessage `json:"created"`
}

type tabularColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type tabularRow struct {
	Cells    []string      `json:"cells"`
	Resource *wireResource `json:"resource"`
}

type tabularReply struct {
	Columns []tabularColumn `json:"columns"`
	Rows    []tabularRow    `json:"rows"`
}
