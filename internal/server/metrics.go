// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/research-directory/internal/query"
)

const metricsNamespace = "research_directory"

// metrics holds the server's Prometheus collectors on a private registry.
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	reloads  *prometheus.CounterVec
}

func newMetrics(holder *query.Holder) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reloads_total",
			Help:      "Snapshot reloads by result.",
		}, []string{"result"}),
	}

	records := prometheus.NewGaugeFunc
	m.registry.MustRegister(
		m.requests, m.duration, m.reloads,
		records(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Name: "experts",
			Help: "Experts in the published snapshot.",
		}, func() float64 { return float64(len(holder.Load().Snapshot.Experts)) }),
		records(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Name: "opportunities",
			Help: "Opportunities in the published snapshot.",
		}, func() float64 { return float64(len(holder.Load().Snapshot.Opportunities)) }),
		records(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Name: "snapshot_loaded_timestamp_seconds",
			Help: "Unix time the published snapshot was loaded.",
		}, func() float64 { return float64(holder.Load().Snapshot.LoadedAt.Unix()) }),
	)
	return m
}

// instrument records request counts and latency by route pattern so ids
// in paths do not explode label cardinality.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
