package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	saveOperations    *prometheus.CounterVec
	saveRetries       prometheus.Counter
	saveRejections    prometheus.Counter
	saveDuration      prometheus.Histogram
	accrualRuns       prometheus.Counter
	accrualPostings   prometheus.Counter
	accrualDuration   prometheus.Histogram
	postedAmount      prometheus.Histogram
	registeredLedgers prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		saveOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "save_operations_total",
				Help: "Total number of save operations by outcome",
			},
			[]string{"status"},
		),
		saveRetries: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "save_conflict_retries_total",
				Help: "Total number of conflict-triggered save retries",
			},
		),
		saveRejections: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "save_rejections_total",
				Help: "Total number of saves rejected because the name was already in flight",
			},
		),
		saveDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "save_duration_milliseconds",
				Help:    "Save operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		accrualRuns: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "interest_reconciliations_total",
				Help: "Total number of deposit interest reconciliation runs",
			},
		),
		accrualPostings: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "interest_postings_total",
				Help: "Total number of interest posting transactions created",
			},
		),
		accrualDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "interest_reconciliation_duration_milliseconds",
				Help:    "Deposit reconciliation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		postedAmount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "interest_posted_amount",
				Help:    "Posted interest amount in account currency units",
				Buckets: prometheus.ExponentialBuckets(0.01, 10, 8),
			},
		),
		registeredLedgers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_registered_accounts",
				Help: "Current number of accounts registered in the balance ledger",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "save.started":
		m.saveOperations.WithLabelValues("started").Inc()
	case "save.committed":
		m.saveOperations.WithLabelValues("committed").Inc()
	case "save.failed":
		m.saveOperations.WithLabelValues("failed").Inc()
	case "save.retried":
		m.saveRetries.Inc()
	case "save.rejected":
		m.saveRejections.Inc()
	case "accrual.reconciled":
		m.accrualRuns.Inc()
	case "accrual.posted":
		m.accrualPostings.Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "save.duration":
		m.saveDuration.Observe(float64(duration.Milliseconds()))
	case "accrual.reconcile":
		m.accrualDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "accrual.posted_amount":
		m.postedAmount.Observe(value)
	case "ledger.accounts":
		m.registeredLedgers.Set(value)
	}
}
