package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics provides Prometheus metrics for the render API.
type metrics struct {
	registry *prometheus.Registry

	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	m := &metrics{
		registry: registry,
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: appName,
				Name:      "renders_total",
				Help:      "Total number of render requests by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: appName,
				Name:      "render_duration_seconds",
				Help:      "Duration of render requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: appName,
				Name:      "renders_in_flight",
				Help:      "Number of render requests being processed",
			},
		),
	}
	registry.MustRegister(m.renders, m.duration, m.inFlight)
	return m
}

// observe records one finished render. outcome is "ok" or an error family.
func (m *metrics) observe(outcome string, took time.Duration) {
	m.renders.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(took.Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
