// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package metrics exposes Prometheus metrics for refresh cycles and tables.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spyglass/spyglass/internal/refresh"
)

const namespace = "spyglass"

// Collector holds all spyglass metrics.
type Collector struct {
	// Refresh metrics
	CyclesTotal   *prometheus.CounterVec
	CycleDuration *prometheus.HistogramVec
	InFlight      prometheus.Gauge

	// Table metrics
	TableRows *prometheus.GaugeVec

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the collector on the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewWithRegistry registers the collector on reg and serves metrics from g.
func NewWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		CyclesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "refresh_cycles_total",
				Help:      "Refresh cycles by outcome",
			},
			[]string{"scheduler", "outcome"},
		),
		CycleDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "refresh_duration_seconds",
				Help:      "Refresh cycle duration in seconds",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"scheduler"},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "refresh_in_flight",
				Help:      "Number of fetches currently running",
			},
		),
		TableRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "table_rows",
				Help:      "Rows shown in the last accepted refresh",
			},
			[]string{"resource"},
		),
		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reloads_total",
				Help:      "Successful override reloads",
			},
		),
		ConfigReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reload_errors_total",
				Help:      "Failed override reloads",
			},
		),
		gatherer: g,
	}
}

// CycleStarted implements refresh.Recorder.
func (c *Collector) CycleStarted(string) {
	c.InFlight.Inc()
}

// CycleFinished implements refresh.Recorder.
func (c *Collector) CycleFinished(name string, o refresh.Outcome, elapsed time.Duration) {
	c.InFlight.Dec()
	c.CyclesTotal.WithLabelValues(name, string(o)).Inc()
	if o == refresh.OutcomeSuccess || o == refresh.OutcomeFailed {
		c.CycleDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	}
}

// SetTableRows records the row count of a table.
func (c *Collector) SetTableRows(key string, n int) {
	c.TableRows.WithLabelValues(key).Set(float64(n))
}

// ConfigReloaded records a reload attempt.
func (c *Collector) ConfigReloaded(err error) {
	if err != nil {
		c.ConfigReloadErrors.Inc()
		return
	}
	c.ConfigReloads.Inc()
}

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
