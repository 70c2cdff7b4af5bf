// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spyglass/spyglass/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const podsReply = `{
  "columns": [
    {"name": "Name", "type": "string"},
    {"name": "Ready", "type": "string"},
    {"name": "Status", "type": "string"}
  ],
  "rows": [
    {
      "cells": ["nginx-1", "1/1", "Running"],
      "resource": {
        "name": "nginx-1",
        "namespace": "default",
        "gvk": {"version": "v1", "kind": "PartialObjectMetadata"},
        "raw": {"metadata": {"uid": "u-1", "labels": {"app": "nginx"}}},
        "created": "2024-01-02T03:04:05Z"
      }
    },
    {
      "cells": ["redis-0", "0/1", "CrashLoopBackOff"],
      "resource": {"name": "redis-0", "namespace": "cache"}
    }
  ]
}`

type capture struct {
	path    string
	header  http.Header
	payload map[string]any
}

func newBackend(t *testing.T, status int, reply string, c *capture) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c != nil {
			c.path, c.header = r.URL.Path, r.Header.Clone()
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &c.payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestNew(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrNoBackend)

	_, err = New("ftp://nowhere")
	assert.Error(t, err)

	c, err := New("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
	assert.Equal(t, "http://localhost:8080/proto.Kube/GetContexts", c.endpoint("GetContexts"))
}

func TestListTabular(t *testing.T) {
	var c capture
	srv := newBackend(t, http.StatusOK, podsReply, &c)
	cl, err := New(srv.URL)
	require.NoError(t, err)

	tbl, err := cl.Session("kind-dev").ListTabular(context.Background(), resource.Pods, "default")
	require.NoError(t, err)

	assert.Equal(t, "/proto.Kube/ListResourceTabular", c.path)
	assert.Equal(t, "application/json", c.header.Get("Content-Type"))
	assert.Equal(t, "1", c.header.Get("Connect-Protocol-Version"))
	assert.Equal(t, "kind-dev", c.payload["context"])
	assert.Equal(t, "default", c.payload["namespace"])
	assert.Equal(t, map[string]any{"group": "", "version": "v1", "resource": "pods"}, c.payload["gvr"])

	require.Len(t, tbl.Columns, 3)
	assert.Equal(t, "Status", tbl.Columns[2].Name)
	require.Len(t, tbl.Rows, 2)

	r := tbl.Rows[0]
	assert.Equal(t, "u-1", r.ID)
	assert.Equal(t, []any{"nginx-1", "1/1", "Running"}, r.Cells)
	assert.Equal(t, map[string]string{"app": "nginx"}, r.Meta.Labels)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), r.Meta.Created.UTC())

	assert.Equal(t, "cache/redis-0", tbl.Rows[1].ID)
	assert.True(t, tbl.Rows[1].Meta.Created.IsZero())
}

func TestListTabularAllNamespaces(t *testing.T) {
	var c capture
	srv := newBackend(t, http.StatusOK, `{"columns":[],"rows":[]}`, &c)
	cl, _ := New(srv.URL, WithService("spyglass.v1.Kube"))

	tbl, err := cl.ListTabular(context.Background(), "", resource.Deployments, "")
	require.NoError(t, err)
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, "/spyglass.v1.Kube/ListResourceTabular", c.path)
	_, ok := c.payload["namespace"]
	assert.False(t, ok)
}

func TestConnectErrors(t *testing.T) {
	uu := map[string]struct {
		status   int
		body     string
		code     string
		canceled bool
	}{
		"connect": {
			status: http.StatusInternalServerError,
			body:   `{"code":"internal","message":"boom"}`,
			code:   "internal",
		},
		"canceled": {
			status:   499,
			body:     `{"code":"canceled","message":"client went away"}`,
			code:     CodeCanceled,
			canceled: true,
		},
		"plain": {
			status: http.StatusServiceUnavailable,
			body:   "upstream down",
			code:   CodeUnavailable,
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			srv := newBackend(t, u.status, u.body, nil)
			cl, _ := New(srv.URL)

			_, err := cl.GetContexts(context.Background())
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, u.code, se.Code)
			assert.Equal(t, u.status, se.HTTPStatus)
			assert.Equal(t, u.canceled, errors.Is(err, context.Canceled))
		})
	}
}

func TestCallCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})
	cl, _ := New(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := cl.GetDefaultContext(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestContextsAndDiscover(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/proto.Kube/GetContexts", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"contexts":["prod","dev"]}`))
	})
	mux.HandleFunc("/proto.Kube/GetDefaultContext", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"context":"dev"}`))
	})
	mux.HandleFunc("/proto.Kube/Discover", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"apis":{
			"v1":{"group":"","version":"v1","resources":[{"name":"pods","namespaced":true}]},
			"apps/v1":{"group":"apps","version":"v1","resources":[{"name":"deployments","namespaced":true}]}
		}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	cl, _ := New(srv.URL, WithTimeout(time.Second))

	cc, err := cl.GetContexts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "prod"}, cc)

	def, err := cl.GetDefaultContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dev", def)

	apis, err := cl.Discover(context.Background(), "dev")
	require.NoError(t, err)
	require.Len(t, apis, 2)
	assert.Equal(t, "apps", apis[0].Group)
	assert.True(t, apis[1].Resources[0].Namespaced)
}

func TestBadTimestamp(t *testing.T) {
	srv := newBackend(t, http.StatusOK, `{"columns":[],"rows":[{"cells":[],"resource":{"name":"x","created":"yesterday"}}]}`, nil)
	cl, _ := New(srv.URL)

	_, err := cl.ListTabular(context.Background(), "", resource.Pods, "")
	assert.ErrorContains(t, err, "row 0")
}
