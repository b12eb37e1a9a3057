package domain

import (
	"fmt"
	"math"
	"strings"
)

// Fault identifies the class of a validation failure.
type Fault string

const (
	FaultMissingField Fault = "missing_field"
	FaultOutOfRange   Fault = "out_of_range"
	FaultNotANumber   Fault = "not_a_number"
)

// Violation describes a single rejected field.
type Violation struct {
	Field  string `json:"field"`
	Fault  Fault  `json:"fault"`
	Detail string `json:"detail"`
}

// ValidationError reports every violated constraint in a raw reading so the
// caller sees all offending fields at once rather than one per round trip.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Detail)
	}
	return "invalid sensor reading: " + strings.Join(parts, "; ")
}

// ValidateReading range-checks a raw reading and returns an immutable
// SensorReading with the values copied verbatim. Out-of-range values are
// rejected, never clamped. On failure the returned error is a
// *ValidationError enumerating every offending field.
func ValidateReading(raw RawReading) (SensorReading, error) {
	var violations []Violation

	rainfall := checkField(&violations, "rainfall", raw.Rainfall)
	humidity := checkField(&violations, "humidity", raw.Humidity)
	temperature := checkField(&violations, "temperature", raw.Temperature)
	pressure := checkField(&violations, "pressure", raw.Pressure)

	if rainfall != nil && *rainfall < 0 {
		violations = append(violations, Violation{
			Field:  "rainfall",
			Fault:  FaultOutOfRange,
			Detail: fmt.Sprintf("rainfall %g mm/hr must not be negative", *rainfall),
		})
	}
	if humidity != nil && (*humidity < 0 || *humidity > 100) {
		violations = append(violations, Violation{
			Field:  "humidity",
			Fault:  FaultOutOfRange,
			Detail: fmt.Sprintf("humidity %g%% must be within [0, 100]", *humidity),
		})
	}
	if pressure != nil && *pressure <= 0 {
		violations = append(violations, Violation{
			Field:  "pressure",
			Fault:  FaultOutOfRange,
			Detail: fmt.Sprintf("pressure %g hPa must be positive", *pressure),
		})
	}

	if len(violations) > 0 {
		return SensorReading{}, &ValidationError{Violations: violations}
	}

	return SensorReading{
		Rainfall:    *rainfall,
		Humidity:    *humidity,
		Temperature: *temperature,
		Pressure:    *pressure,
	}, nil
}

// checkField records missing and non-finite faults for one field. It returns
// the field pointer only when the value is present and finite, so range
// checks above never dereference a bad value.
func checkField(violations *[]Violation, name string, value *float64) *float64 {
	if value == nil {
		*violations = append(*violations, Violation{
			Field:  name,
			Fault:  FaultMissingField,
			Detail: "required field is missing",
		})
		return nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		*violations = append(*violations, Violation{
			Field:  name,
			Fault:  FaultNotANumber,
			Detail: "value is not a finite number",
		})
		return nil
	}
	return value
}
