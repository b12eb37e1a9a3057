package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion pipeline and alert dispatch.
type Metrics struct {
	ReadingsIngested   *prometheus.CounterVec // labels: severity={safe,warning,cloudburst_detected}
	ValidationFailures *prometheus.CounterVec // labels: fault={missing_field,out_of_range,not_a_number}
	IngestDuration     prometheus.Histogram
	HistorySize        prometheus.Gauge

	// Alert dispatch metrics.
	AlertsDispatched      *prometheus.CounterVec // labels: severity
	AlertDeliveryFailures prometheus.Counter
	AlertQueueDropped     prometheus.Counter
	DispatcherRunning     prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReadingsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cloudburst",
			Name:      "readings_ingested_total",
			Help:      "Successfully ingested sensor readings by severity.",
		}, []string{"severity"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cloudburst",
			Name:      "validation_failures_total",
			Help:      "Rejected sensor readings by fault class.",
		}, []string{"fault"}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cloudburst",
			Name:      "ingest_duration_seconds",
			Help:      "Duration of a complete validate-classify-append cycle.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		HistorySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cloudburst",
			Name:      "history_size",
			Help:      "Number of classified records currently retained.",
		}),
		AlertsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cloudburst",
			Name:      "alerts_dispatched_total",
			Help:      "Alert events handed to the notifier by severity.",
		}, []string{"severity"}),
		AlertDeliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cloudburst",
			Name:      "alert_delivery_failures_total",
			Help:      "Notifier deliveries that returned an error.",
		}),
		AlertQueueDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cloudburst",
			Name:      "alert_queue_dropped_total",
			Help:      "Alert events dropped because the dispatch queue was full.",
		}),
		DispatcherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cloudburst",
			Name:      "dispatcher_running",
			Help:      "1 when the alert dispatcher is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.ReadingsIngested,
		m.ValidationFailures,
		m.IngestDuration,
		m.HistorySize,
		m.AlertsDispatched,
		m.AlertDeliveryFailures,
		m.AlertQueueDropped,
		m.DispatcherRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReadingsIngested:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cloudburst", Name: "readings_ingested_total"}, []string{"severity"}),
		ValidationFailures:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cloudburst", Name: "validation_failures_total"}, []string{"fault"}),
		IngestDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "cloudburst", Name: "ingest_duration_seconds"}),
		HistorySize:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "cloudburst", Name: "history_size"}),
		AlertsDispatched:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cloudburst", Name: "alerts_dispatched_total"}, []string{"severity"}),
		AlertDeliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cloudburst", Name: "alert_delivery_failures_total"}),
		AlertQueueDropped:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cloudburst", Name: "alert_queue_dropped_total"}),
		DispatcherRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "cloudburst", Name: "dispatcher_running"}),
	}
}
