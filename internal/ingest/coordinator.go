// Package ingest orchestrates the validate-classify-retain-notify pipeline
// for incoming sensor readings.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
	"github.com/couchcryptid/cloudburst-warning-service/internal/history"
	"github.com/couchcryptid/cloudburst-warning-service/internal/observability"
	"github.com/google/uuid"
)

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status       string `json:"status"`
	ReadingCount int    `json:"readings_count"`
}

// Coordinator composes validation, classification, retention, and alert
// dispatch into one logical operation per submitted reading. Alert delivery
// is decoupled from the submit path through a buffered queue drained by
// Run, so a slow or failing notifier can never stall ingestion.
type Coordinator struct {
	classifier domain.Classifier
	store      *history.Store
	notifier   domain.Notifier
	alerts     chan domain.AlertEvent
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
}

// New creates a Coordinator. queueSize bounds the number of alert events
// waiting for dispatch; when the queue is full further events are dropped
// (ingestion always wins over delivery).
func New(classifier domain.Classifier, store *history.Store, notifier domain.Notifier,
	queueSize int, logger *slog.Logger, metrics *observability.Metrics) *Coordinator {
	if queueSize < 1 {
		queueSize = 64
	}
	return &Coordinator{
		classifier: classifier,
		store:      store,
		notifier:   notifier,
		alerts:     make(chan domain.AlertEvent, queueSize),
		logger:     logger,
		metrics:    metrics,
	}
}

// Submit validates, classifies, and retains one reading, then enqueues an
// alert event when the severity is Warning or above. On validation failure
// nothing is retained and no alert fires; the returned error is a
// *domain.ValidationError. On success the classified record is returned
// whether or not an alert fired.
func (c *Coordinator) Submit(raw domain.RawReading) (domain.ClassifiedRecord, error) {
	start := time.Now()

	reading, err := domain.ValidateReading(raw)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			for _, v := range verr.Violations {
				c.metrics.ValidationFailures.WithLabelValues(string(v.Fault)).Inc()
			}
		}
		return domain.ClassifiedRecord{}, err
	}

	status, reason := c.classifier.Classify(reading)
	record := c.store.Append(reading, status, reason)

	c.metrics.ReadingsIngested.WithLabelValues(status.String()).Inc()
	c.metrics.HistorySize.Set(float64(c.store.Len()))
	c.metrics.IngestDuration.Observe(time.Since(start).Seconds())

	c.logger.Info("reading ingested",
		"severity", status.String(),
		"reason", reason,
		"rainfall_mm_hr", reading.Rainfall,
		"timestamp", record.Timestamp,
	)

	if status >= domain.SeverityWarning {
		c.enqueueAlert(record)
	}

	return record, nil
}

// enqueueAlert hands an alert event to the dispatch queue without blocking.
// A full queue means the notifier is far behind; the event is dropped and
// counted rather than holding up the submit caller.
func (c *Coordinator) enqueueAlert(record domain.ClassifiedRecord) {
	event := domain.AlertEvent{
		ID:          uuid.NewString(),
		Record:      record,
		TriggeredAt: record.Timestamp,
	}

	select {
	case c.alerts <- event:
		c.metrics.AlertsDispatched.WithLabelValues(record.Status.String()).Inc()
	default:
		c.metrics.AlertQueueDropped.Inc()
		c.logger.Warn("alert queue full, dropping event",
			"event_id", event.ID,
			"severity", record.Status.String(),
		)
	}
}

// Latest returns up to n of the most recent classified records in insertion
// order, oldest first. n is clamped to the stored count.
func (c *Coordinator) Latest(n int) []domain.ClassifiedRecord {
	return c.store.Snapshot(n)
}

// Capacity returns the history ring capacity.
func (c *Coordinator) Capacity() int {
	return c.store.Capacity()
}

// Health reports liveness plus the current record count. It always succeeds
// while the process is up.
func (c *Coordinator) Health() HealthStatus {
	return HealthStatus{
		Status:       "healthy",
		ReadingCount: c.store.Len(),
	}
}

// CheckReadiness returns nil once the alert dispatcher is running.
func (c *Coordinator) CheckReadiness(_ context.Context) error {
	if !c.ready.Load() {
		return errors.New("alert dispatcher has not started yet")
	}
	return nil
}

// Run drains the alert queue until the context is cancelled, delivering each
// event to the notifier. Delivery failures are logged and counted; the core
// owns no retry policy, so a failed event is not requeued.
func (c *Coordinator) Run(ctx context.Context) error {
	c.logger.Info("alert dispatcher started", "queue_size", cap(c.alerts))
	c.metrics.DispatcherRunning.Set(1)
	defer c.metrics.DispatcherRunning.Set(0)

	c.ready.Store(true)
	defer c.ready.Store(false)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("alert dispatcher stopping", "reason", ctx.Err(), "pending", len(c.alerts))
			return nil
		case event := <-c.alerts:
			if err := c.notifier.Notify(ctx, event); err != nil {
				c.metrics.AlertDeliveryFailures.Inc()
				c.logger.Error("alert delivery failed",
					"error", err,
					"event_id", event.ID,
					"severity", event.Record.Status.String(),
				)
			}
		}
	}
}
