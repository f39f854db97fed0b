// Package metrics exposes Prometheus counters for HTTP traffic and store activity.
package metrics

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taskmaster/dashboard/internal/ports"
)

// Metrics owns a private registry so tests and multiple servers never collide.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	mutations       *prometheus.CounterVec
	persistWrites   *prometheus.CounterVec
	persistDuration *prometheus.HistogramVec
	fetchCommits    *prometheus.CounterVec
}

var _ ports.StoreObserver = (*Metrics)(nil)

// New registers every collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_store_mutations_total",
				Help: "Store mutations by operation",
			},
			[]string{"op"},
		),
		persistWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_storage_writes_total",
				Help: "Persisted field writes by key and result",
			},
			[]string{"key", "result"},
		),
		persistDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_storage_write_duration_seconds",
				Help:    "Persisted field write latency",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2},
			},
			[]string{"key"},
		),
		fetchCommits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_fetch_commits_total",
				Help: "Fetch results offered to the store, by topic kind and outcome",
			},
			[]string{"topic", "result"},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.mutations,
		m.persistWrites,
		m.persistDuration,
		m.fetchCommits,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) MutationApplied(op string) {
	m.mutations.WithLabelValues(op).Inc()
}

func (m *Metrics) PersistFinished(key string, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.persistWrites.WithLabelValues(key, result).Inc()
	m.persistDuration.WithLabelValues(key).Observe(took.Seconds())
}

// FetchCommitted collapses per-symbol stock topics into one label value.
func (m *Metrics) FetchCommitted(topic string, applied bool) {
	if i := strings.IndexByte(topic, ':'); i >= 0 {
		topic = topic[:i]
	}
	result := "applied"
	if !applied {
		result = "stale"
	}
	m.fetchCommits.WithLabelValues(topic, result).Inc()
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			m.requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			m.requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
