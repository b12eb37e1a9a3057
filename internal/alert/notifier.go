// Package alert provides notifier implementations and composition for
// delivering alert events to external channels.
package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
)

// LogNotifier writes alert events to the structured log. It is always wired
// in so hazard detections are visible even when no external channel is
// configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the alert. Cloudburst events log at error level, warnings at
// warn level.
func (n *LogNotifier) Notify(_ context.Context, event domain.AlertEvent) error {
	msg := Message(event)
	attrs := []any{
		"event_id", event.ID,
		"severity", event.Record.Status.String(),
		"reason", event.Record.Reason,
		"triggered_at", event.TriggeredAt,
	}
	if event.Record.Status >= domain.SeverityCloudburst {
		n.logger.Error(msg, attrs...)
	} else {
		n.logger.Warn(msg, attrs...)
	}
	return nil
}

// Fanout delivers each event to every wrapped notifier. One channel failing
// does not stop the others; the combined error reports every failure.
type Fanout struct {
	notifiers []domain.Notifier
}

// NewFanout composes notifiers into a single Notifier.
func NewFanout(notifiers ...domain.Notifier) *Fanout {
	return &Fanout{notifiers: notifiers}
}

func (f *Fanout) Notify(ctx context.Context, event domain.AlertEvent) error {
	var errs []error
	for _, n := range f.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Message renders the human-readable alert text sent to external channels.
func Message(event domain.AlertEvent) string {
	data := event.Record.Data
	if event.Record.Status >= domain.SeverityCloudburst {
		return fmt.Sprintf(
			"ALERT: Cloudburst detected! Rainfall: %gmm/hr, Humidity: %g%%, Pressure: %ghPa. Stay safe and avoid low-lying regions.",
			data.Rainfall, data.Humidity, data.Pressure)
	}
	return fmt.Sprintf("WARNING: High rainfall detected. Rainfall: %gmm/hr", data.Rainfall)
}
