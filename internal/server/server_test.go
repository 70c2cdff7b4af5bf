// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyglass/spyglass/internal/metrics"
	"github.com/spyglass/spyglass/internal/model"
	"github.com/spyglass/spyglass/internal/model1"
	"github.com/spyglass/spyglass/internal/render"
	"github.com/spyglass/spyglass/internal/resource"
	"github.com/spyglass/spyglass/internal/table"
)

type staticSource struct{}

func (staticSource) ListTabular(context.Context, resource.Key, string) (*model1.Table, error) {
	return &model1.Table{
		Columns: []model1.Column{{Name: "Name"}, {Name: "Status"}},
		Rows: model1.Rows{
			{ID: "u-1", Meta: model1.Meta{Name: "web-1"}, Cells: []any{"web-1", "Running"}},
		},
	}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *model.Table) {
	t.Helper()
	reg := table.Builtin(render.NewLibrary(nil))
	pods := model.NewTable(resource.Pods, staticSource{}, reg, model.WithNamespace("default"))
	require.NoError(t, pods.Refresh(context.Background()))

	preg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(preg, preg)
	s := New(Options{
		Resolver: reg,
		Metrics:  m.Handler(),
		Tables:   func() []*model.Table { return []*model.Table{pods} },
		Logger:   zerolog.Nop(),
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return ts, pods
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	var out map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/healthz", &out))
	assert.Equal(t, "ok", out["status"])
}

func TestMetrics(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResources(t *testing.T) {
	ts, _ := newTestServer(t)

	var out []categoryView
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/resources", &out))
	require.Len(t, out, len(resource.DefaultTaxonomy))
	assert.Equal(t, "Cluster", out[0].Name)
	assert.Contains(t, out[1].Resources, resource.Pods.String())
}

func TestTables(t *testing.T) {
	ts, _ := newTestServer(t)

	var out []tableView
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/tables", &out))
	require.Len(t, out, 1)
	assert.NotEmpty(t, out[0].Refreshed)
	out[0].Refreshed = ""
	assert.Equal(t, tableView{Key: resource.Pods.String(), Namespace: "default", Rows: 1}, out[0])
}

func TestTableConfig(t *testing.T) {
	ts, _ := newTestServer(t)

	uu := map[string]struct {
		path   string
		status int
		key    string
	}{
		"alias":   {path: "/api/tables/po", status: http.StatusOK, key: resource.Pods.String()},
		"name":    {path: "/api/tables/services", status: http.StatusOK, key: resource.Services.String()},
		"query":   {path: "/api/tables/x?key=apps/v1::deployments", status: http.StatusOK, key: resource.Deployments.String()},
		"unknown": {path: "/api/tables/widgets", status: http.StatusNotFound},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			var out configView
			assert.Equal(t, u.status, getJSON(t, ts.URL+u.path, &out))
			assert.Equal(t, u.key, out.Key)
		})
	}

	var pods configView
	getJSON(t, ts.URL+"/api/tables/pods", &pods)
	assert.Equal(t, []string{table.ColStatus, table.ColReady}, pods.ColumnOrder)
	assert.Equal(t, []string{table.ColAge, table.ColSelector, table.ColStatus}, pods.Rendered)
	assert.True(t, pods.ShowName)
}

func TestTableConfigNoResolver(t *testing.T) {
	ts := httptest.NewServer(New(Options{Logger: zerolog.Nop()}).Handler())
	defer ts.Close()

	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, ts.URL+"/api/tables/pods", nil))
}

func TestListenAndServe(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(Options{Logger: zerolog.Nop()}).ListenAndServe(ctx, addr)
	}()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
