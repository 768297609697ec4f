// Package metrics exposes Prometheus collectors for the HTTP layer, the swap lifecycle
// and realtime subscriptions.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several instances can coexist in one process.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	SwapTransitionsTotal *prometheus.CounterVec
	RatingsTotal         prometheus.Counter

	RealtimeSubscribers  prometheus.Gauge
	RealtimeEventsTotal  *prometheus.CounterVec
	RealtimeDroppedTotal prometheus.Counter
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		SwapTransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "swap_transitions_total",
				Help:      "Swap request status changes by resulting status",
			},
			[]string{"status"},
		),
		RatingsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ratings_total",
				Help:      "Ratings submitted",
			},
		),
		RealtimeSubscribers: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "realtime_subscribers",
				Help:      "Open realtime subscriptions",
			},
		),
		RealtimeEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "realtime_events_total",
				Help:      "Change events published by table and type",
			},
			[]string{"table", "type"},
		),
		RealtimeDroppedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "realtime_dropped_subscribers_total",
				Help:      "Subscriptions closed because the consumer fell behind",
			},
		),
	}
}

// Middleware records request count, latency and in-flight requests.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) SwapTransition(status string) {
	if m == nil {
		return
	}
	m.SwapTransitionsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RatingSubmitted() {
	if m == nil {
		return
	}
	m.RatingsTotal.Inc()
}

func (m *Metrics) SubscriberOpened() {
	if m == nil {
		return
	}
	m.RealtimeSubscribers.Inc()
}

func (m *Metrics) SubscriberClosed(dropped bool) {
	if m == nil {
		return
	}
	m.RealtimeSubscribers.Dec()
	if dropped {
		m.RealtimeDroppedTotal.Inc()
	}
}

func (m *Metrics) EventPublished(table, eventType string) {
	if m == nil {
		return
	}
	m.RealtimeEventsTotal.WithLabelValues(table, eventType).Inc()
}
