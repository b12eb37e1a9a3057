// Package kafka publishes alert events to a Kafka topic for downstream
// consumers (dashboards, paging systems).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/cloudburst-warning-service/internal/config"
	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// AlertWriter produces alert events to the configured alerts topic.
// It implements domain.Notifier.
type AlertWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewAlertWriter creates a Kafka producer for the configured alerts topic.
func NewAlertWriter(cfg *config.Config, logger *slog.Logger) *AlertWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &AlertWriter{writer: w, logger: logger}
}

// Notify serializes and publishes one alert event.
func (w *AlertWriter) Notify(ctx context.Context, event domain.AlertEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *AlertWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an AlertEvent into a Kafka message keyed by
// event ID so replays of the same event land in the same partition.
func serializeToMessage(event domain.AlertEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "severity", Value: []byte(event.Record.Status.String())},
			{Key: "triggered_at", Value: []byte(event.TriggeredAt.Format(time.RFC3339))},
		},
	}, nil
}
