// Package metrics holds the Prometheus collectors for the HTTP surface and
// document generation.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values for document counters
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics groups every collector the service exports.
type Metrics struct {
	ReqTotal *prometheus.CounterVec
	ReqDur   *prometheus.HistogramVec
	InFlight prometheus.Gauge

	DocumentsTotal *prometheus.CounterVec
	DocumentPages  prometheus.Histogram
	RenderDuration prometheus.Histogram
	LogoFallbacks  prometheus.Counter
}

// New creates and registers the collectors. A nil registerer means the
// default Prometheus registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		DocumentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_documents_total",
			Help:      "Invoice PDF render attempts by outcome.",
		}, []string{"result"}),
		DocumentPages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invoice_document_pages",
			Help:      "Page count of rendered invoices.",
			Buckets:   []float64{1, 2, 3, 5, 10, 25},
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invoice_render_duration_ms",
			Help:      "Time spent rendering one invoice in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		LogoFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_logo_fallbacks_total",
			Help:      "Invoices rendered without a supplied logo because it could not be decoded.",
		}),
	}

	m.ReqTotal = register(reg, m.ReqTotal)
	m.ReqDur = register(reg, m.ReqDur)
	m.InFlight = register(reg, m.InFlight)
	m.DocumentsTotal = register(reg, m.DocumentsTotal)
	m.DocumentPages = register(reg, m.DocumentPages)
	m.RenderDuration = register(reg, m.RenderDuration)
	m.LogoFallbacks = register(reg, m.LogoFallbacks)
	return m
}

// register adds c to reg, reusing an identical collector that is already
// registered so that New can be called more than once per registry.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}

// ObserveRender records the outcome of one render. Nil-safe.
func (m *Metrics) ObserveRender(pages int, logoSupplied, logoEmbedded bool, took time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.DocumentsTotal.WithLabelValues(ResultError).Inc()
		return
	}
	m.DocumentsTotal.WithLabelValues(ResultOK).Inc()
	m.DocumentPages.Observe(float64(pages))
	m.RenderDuration.Observe(DurationMillis(took))
	if logoSupplied && !logoEmbedded {
		m.LogoFallbacks.Inc()
	}
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.InFlight.Inc()
		start := time.Now()

		c.Next()

		m.InFlight.Dec()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.ReqTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.ReqDur.WithLabelValues(method, route).Observe(DurationMillis(time.Since(start)))
	}
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
