// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package server exposes metrics, health and the resolved table
// configuration over HTTP for debugging.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/spyglass/spyglass/internal/model"
	"github.com/spyglass/spyglass/internal/resource"
	"github.com/spyglass/spyglass/internal/table"
)

const shutdownGrace = 5 * time.Second

// LookupFunc resolves a user supplied resource name.
type LookupFunc func(name string) (resource.Key, bool)

// Options configures the server.
type Options struct {
	Resolver model.Resolver
	Lookup   LookupFunc
	Taxonomy resource.Taxonomy
	Metrics  http.Handler
	// Tables lists the live tables.
	Tables func() []*model.Table
	Logger zerolog.Logger
}

// Server is the debug HTTP server.
type Server struct {
	opts   Options
	router chi.Router
}

// New builds the server routes.
func New(opts Options) *Server {
	if opts.Lookup == nil {
		opts.Lookup = resource.DefaultTaxonomy.Lookup
	}
	if opts.Taxonomy == nil {
		opts.Taxonomy = resource.DefaultTaxonomy
	}
	s := Server{opts: opts}
	s.router = s.routes()

	return &s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logRequests(s.opts.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	if s.opts.Metrics != nil {
		r.Handle("/metrics", s.opts.Metrics)
	}
	r.Route("/api", func(r chi.Router) {
		r.Get("/resources", s.resources)
		r.Get("/tables", s.tables)
		r.Get("/tables/{name}", s.tableConfig)
	})

	return r
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.opts.Logger.Info().Str("addr", addr).Msg("Debug server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type categoryView struct {
	Name      string   `json:"name"`
	Resources []string `json:"resources"`
}

func (s *Server) resources(w http.ResponseWriter, _ *http.Request) {
	out := make([]categoryView, 0, len(s.opts.Taxonomy))
	for _, c := range s.opts.Taxonomy {
		v := categoryView{Name: c.Name, Resources: make([]string, 0, len(c.Keys))}
		for _, k := range c.Keys {
			v.Resources = append(v.Resources, k.String())
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, out)
}

type tableView struct {
	Key       string `json:"key"`
	Namespace string `json:"namespace"`
	Rows      int    `json:"rows"`
	InFlight  bool   `json:"inFlight"`
	Pending   bool   `json:"pending"`
	Refreshed string `json:"refreshed,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) tables(w http.ResponseWriter, _ *http.Request) {
	out := []tableView{}
	if s.opts.Tables != nil {
		for _, t := range s.opts.Tables() {
			data := t.Peek()
			v := tableView{
				Key:       t.Key().String(),
				Namespace: t.Namespace(),
				Rows:      data.RowCount(),
				InFlight:  t.Scheduler().InFlight(),
				Pending:   t.Scheduler().Pending(),
				Error:     data.Error(),
			}
			if at := data.Refreshed(); !at.IsZero() {
				v.Refreshed = at.UTC().Format(time.RFC3339)
			}
			out = append(out, v)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type configView struct {
	Key           string         `json:"key"`
	HiddenColumns []string       `json:"hiddenColumns"`
	ColumnOrder   []string       `json:"columnOrder"`
	ShowName      bool           `json:"showName"`
	ShowAge       bool           `json:"showAge"`
	DefaultOrder  table.Ordering `json:"defaultOrder"`
	Rendered      []string       `json:"rendered"`
}

// tableConfig accepts aliases, plain names or full keys. Full keys contain a
// slash, so they are also accepted as the key query parameter.
func (s *Server) tableConfig(w http.ResponseWriter, r *http.Request) {
	if s.opts.Resolver == nil {
		writeError(w, http.StatusServiceUnavailable, "no override resolver")
		return
	}
	name := chi.URLParam(r, "name")
	if q := r.URL.Query().Get("key"); q != "" {
		name = q
	}
	key, ok := s.opts.Lookup(strings.TrimSpace(name))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown resource "+name)
		return
	}

	cfg := s.opts.Resolver.Resolve(key)
	writeJSON(w, http.StatusOK, configView{
		Key:           key.String(),
		HiddenColumns: cfg.HiddenColumns,
		ColumnOrder:   cfg.ColumnOrder,
		ShowName:      cfg.ShowName,
		ShowAge:       cfg.ShowAge,
		DefaultOrder:  cfg.DefaultOrder,
		Rendered:      cfg.Rendered(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func logRequests(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if r.URL.Path == "/metrics" || r.URL.Path == "/healthz" {
				return
			}
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("HTTP request")
		})
	}
}
