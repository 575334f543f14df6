package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API metrics
	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prdforge_api_request_duration_seconds",
			Help:    "Backend request duration in seconds by call type",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12), // 0.1s to ~200s
		},
		[]string{"call", "status"}, // call: "check"/"generate"/"stream"
	)

	rateLimiterWaitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prdforge_rate_limiter_wait_duration_seconds",
			Help:    "Rate limiter wait duration in seconds by model",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		},
		[]string{"model"},
	)

	// Wizard metrics
	generationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prdforge_generation_total",
			Help: "Total number of wizard generation operations",
		},
		[]string{"operation", "status"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prdforge_operation_duration_seconds",
			Help:    "Wizard operation duration including every chained generation",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 14),
		},
		[]string{"operation"},
	)

	busySessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prdforge_busy_sessions",
			Help: "Number of sessions with a generation in flight",
		},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prdforge_active_sessions",
			Help: "Number of wizard sessions held in memory",
		},
	)

	eventSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prdforge_event_subscribers",
			Help: "Number of connected event stream subscribers",
		},
	)
)

// Collector provides convenience methods for recording metrics
type Collector struct {
	logger *slog.Logger
}

// NewCollector creates a new metrics collector
func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{
		logger: logger,
	}
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// RecordAPIRequest records a backend request duration
func (c *Collector) RecordAPIRequest(call string, duration time.Duration, success bool) {
	apiRequestDuration.WithLabelValues(call, status(success)).Observe(duration.Seconds())
}

// RecordRateLimiterWait records rate limiter wait time
func (c *Collector) RecordRateLimiterWait(model string, duration time.Duration) {
	rateLimiterWaitDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordOperation records a finished wizard operation
func (c *Collector) RecordOperation(operation string, duration time.Duration, success bool) {
	generationTotal.WithLabelValues(operation, status(success)).Inc()
	operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if !success {
		c.logger.Debug("Operation failed", "operation", operation, "duration_ms", duration.Milliseconds())
	}
}

// BusyStarted marks one more session as busy
func (c *Collector) BusyStarted() { busySessions.Inc() }

// BusyFinished marks one session as idle again
func (c *Collector) BusyFinished() { busySessions.Dec() }

// SetActiveSessions sets the number of sessions held in memory
func (c *Collector) SetActiveSessions(count int) {
	activeSessions.Set(float64(count))
}

// SubscriberAdded increments the event subscriber gauge
func (c *Collector) SubscriberAdded() { eventSubscribers.Inc() }

// SubscriberRemoved decrements the event subscriber gauge
func (c *Collector) SubscriberRemoved() { eventSubscribers.Dec() }

// Handler returns the HTTP handler exposing the default registry
func (c *Collector) Handler() http.Handler {
	return promhttp.Handler()
}
