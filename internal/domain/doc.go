// Package domain models environmental sensor readings and their hazard
// classification for the cloudburst early warning system.
//
// # Data Source
//
// Readings arrive from weather-station sensors (or the synthetic generator
// in cmd/sensorgen) as flat JSON posted to the ingestion endpoint. Each
// reading carries four measurements:
//
//	rainfall    — rainfall rate in mm/hr, must be >= 0
//	humidity    — relative humidity in percent, must be within [0, 100]
//	temperature — air temperature in °C, informational only
//	pressure    — atmospheric pressure in hPa, must be > 0
//
// Temperature is recorded and stored but plays no part in classification.
//
// # Hazard Classification
//
// Classification is a deterministic rule evaluation against fixed
// thresholds, checked in precedence order with first match winning:
//
//	Cloudburst: rainfall > 50 mm/hr, OR humidity > 85% with pressure < 1000 hPa
//	Warning:    20 mm/hr <= rainfall <= 50 mm/hr
//	Safe:       everything else
//
// Boundary semantics are load-bearing: rainfall of exactly 50.0 is Warning,
// not Cloudburst (the rainfall rule is strictly >50); exactly 20.0 is
// Warning (the lower bound is inclusive). Humidity of exactly 85.0 or
// pressure of exactly 1000.0 does not satisfy the combined disjunct.
// The default thresholds live in [DefaultThresholds]; tests exercise
// boundaries by constructing a [Classifier] with custom values.
//
// # Severity Wire Format
//
// Severity serializes as the strings "safe", "warning", and
// "cloudburst_detected", matching the format consumed by the dashboard
// and the alert sinks.
package domain
