// Package metrics provides Prometheus instrumentation for Inventario.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Metrics holds the Prometheus collectors for the service.
// A nil *Metrics is valid and records nothing, so call sites never need
// to guard against a disabled metrics configuration.
type Metrics struct {
	registry *prometheus.Registry

	// httpRequests counts handled HTTP requests by route and status code.
	httpRequests *prometheus.CounterVec

	// httpDuration observes request latency by route.
	httpDuration *prometheus.HistogramVec

	// degradedEvents counts synthesized responses by degradation mode
	// (write, auth, read).
	degradedEvents *prometheus.CounterVec
}

// New creates a Metrics with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventario_http_requests_total",
			Help: "Total HTTP requests handled, by route and status code.",
		}, []string{"route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inventario_http_request_duration_seconds",
			Help:    "HTTP request latency, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		degradedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventario_degraded_events_total",
			Help: "Synthesized responses served while the store was unreachable, by mode.",
		}, []string{"mode"}),
	}

	registry.MustRegister(m.httpRequests, m.httpDuration, m.degradedEvents)
	return m
}

// RecordRequest records a handled HTTP request.
func (m *Metrics) RecordRequest(route string, code int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, fmt.Sprintf("%d", code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordDegraded records a synthesized degraded-mode response.
// Mode is one of "write", "auth", "read".
func (m *Metrics) RecordDegraded(mode string) {
	if m == nil {
		return
	}
	m.degradedEvents.WithLabelValues(mode).Inc()
}

// Handler returns the HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Server is a small HTTP server exposing the metrics endpoint.
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
}

// NewServer creates a metrics server listening on addr at path.
func NewServer(m *Metrics, addr, path string, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())

	return &Server{
		srv: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
		logger: logger.With().Str("component", "metrics").Logger(),
	}
}

// Start begins serving. It returns when the server stops.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.srv.Addr).Msg("metrics server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the metrics server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
