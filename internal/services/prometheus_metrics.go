package services

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorderInterface defines the contract for operational metrics
type MetricsRecorderInterface interface {
	RecordLedgerOperation(operation, status string)
	RecordLedgerDuration(duration time.Duration)
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
	RecordAlertsComputed(alertType string, count int)
}

type PrometheusMetrics struct {
	ledgerOperationsTotal *prometheus.CounterVec
	ledgerDuration        prometheus.Histogram
	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec
	alertsComputedTotal   *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		ledgerOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total number of ledger mutations by operation and status",
			},
			[]string{"operation", "status"},
		),
		ledgerDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_milliseconds",
				Help:    "Ledger mutation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		alertsComputedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alerts_computed_total",
				Help: "Total number of alerts computed by type",
			},
			[]string{"type"},
		),
	}
}

func (m *PrometheusMetrics) RecordLedgerOperation(operation, status string) {
	m.ledgerOperationsTotal.WithLabelValues(operation, status).Inc()
}

func (m *PrometheusMetrics) RecordLedgerDuration(duration time.Duration) {
	m.ledgerDuration.Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordAlertsComputed(alertType string, count int) {
	m.alertsComputedTotal.WithLabelValues(alertType).Add(float64(count))
}

// NoopMetrics discards all recordings. Used by tests, where registering
// collectors on the global registry more than once would panic.
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface {
	return &NoopMetrics{}
}

func (m *NoopMetrics) RecordLedgerOperation(operation, status string)                            {}
func (m *NoopMetrics) RecordLedgerDuration(duration time.Duration)                               {}
func (m *NoopMetrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {}
func (m *NoopMetrics) RecordAlertsComputed(alertType string, count int)                          {}
