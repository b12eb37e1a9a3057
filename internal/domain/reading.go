package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RawReading is an untrusted sensor payload as posted to the ingestion
// endpoint. Fields are pointers so a missing JSON key is distinguishable
// from an explicit zero.
type RawReading struct {
	Rainfall    *float64 `json:"rainfall"`    // mm/hr
	Humidity    *float64 `json:"humidity"`    // percent
	Temperature *float64 `json:"temperature"` // °C
	Pressure    *float64 `json:"pressure"`    // hPa
}

// SensorReading is a validated reading. Construct via ValidateReading;
// treated as immutable after construction.
type SensorReading struct {
	Rainfall    float64 `json:"rainfall"`
	Humidity    float64 `json:"humidity"`
	Temperature float64 `json:"temperature"`
	Pressure    float64 `json:"pressure"`
}

// Severity is the hazard classification of a reading, totally ordered
// Safe < Warning < Cloudburst. A record's severity is terminal: it is
// assigned once at ingestion and never revised.
type Severity int

const (
	SeveritySafe Severity = iota
	SeverityWarning
	SeverityCloudburst
)

const (
	severitySafeWire       = "safe"
	severityWarningWire    = "warning"
	severityCloudburstWire = "cloudburst_detected"
)

// String returns the wire representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return severityWarningWire
	case SeverityCloudburst:
		return severityCloudburstWire
	default:
		return severitySafeWire
	}
}

// MarshalJSON encodes the severity as its wire string.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity wire string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("unmarshal severity: %w", err)
	}
	switch str {
	case severitySafeWire:
		*s = SeveritySafe
	case severityWarningWire:
		*s = SeverityWarning
	case severityCloudburstWire:
		*s = SeverityCloudburst
	default:
		return fmt.Errorf("unknown severity %q", str)
	}
	return nil
}

// ClassifiedRecord is a reading after validation and classification, as
// retained by the history store. Timestamps are assigned by the store at
// append time and are monotonically non-decreasing across records.
type ClassifiedRecord struct {
	Timestamp time.Time     `json:"timestamp"`
	Data      SensorReading `json:"data"`
	Status    Severity      `json:"status"`
	Reason    string        `json:"reason"`
}

// AlertEvent is the notification payload handed to the Notifier when a
// reading's severity is Warning or above. It is consumed once and not
// retained by the core.
type AlertEvent struct {
	ID          string           `json:"id"`
	Record      ClassifiedRecord `json:"record"`
	TriggeredAt time.Time        `json:"triggered_at"`
}

// Notifier delivers alert events to an external channel (SMS gateway,
// message bus, log). Delivery failures are the implementation's to report;
// the core does not retry.
type Notifier interface {
	Notify(ctx context.Context, event AlertEvent) error
}
