package metrics

import (
	"net/http"
	"strconv"
	"time"

	"CaptionComposer/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the service collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Fetches         *prometheus.CounterVec
	Motifs          *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caption_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "caption_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"route"},
		),
		Fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caption_fetch_total",
				Help: "Market data collections by source and fallback reason",
			},
			[]string{"source", "reason"}, // reason: none|fetch_error|empty_series|insufficient_data
		),
		Motifs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caption_motif_total",
				Help: "Captions rendered per motif",
			},
			[]string{"motif"},
		),
	}
	m.Registry.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.Fetches,
		m.Motifs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// RecordAnalysis counts the data source and motif of a completed analysis.
func (m *Metrics) RecordAnalysis(intel *model.Intelligence) error {
	reason := string(intel.Snapshot.FallbackReason)
	if reason == "" {
		reason = "none"
	}
	m.Fetches.WithLabelValues(string(intel.Snapshot.DataSource), reason).Inc()
	m.Motifs.WithLabelValues(intel.Caption.Motif.Name).Inc()
	return nil
}
