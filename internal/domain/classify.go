package domain

import "fmt"

// Thresholds holds the classification rule constants. They are operational
// policy rather than user configuration, but live in a struct so tests can
// exercise boundary values without touching global state.
type Thresholds struct {
	// WarningRainfall is the inclusive lower bound of the warning band, mm/hr.
	WarningRainfall float64
	// CloudburstRainfall is the exclusive rainfall bound above which a
	// reading is a cloudburst regardless of other measurements, mm/hr.
	// It doubles as the inclusive upper bound of the warning band.
	CloudburstRainfall float64
	// CloudburstHumidity is the exclusive humidity bound of the combined
	// humidity/pressure cloudburst rule, percent.
	CloudburstHumidity float64
	// CloudburstPressure is the exclusive pressure bound of the combined
	// humidity/pressure cloudburst rule, hPa.
	CloudburstPressure float64
}

// DefaultThresholds returns the operational rule constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WarningRainfall:    20,
		CloudburstRainfall: 50,
		CloudburstHumidity: 85,
		CloudburstPressure: 1000,
	}
}

// Classifier maps validated readings to a hazard severity. It is pure and
// side-effect free; the same reading always yields the same result.
type Classifier struct {
	t Thresholds
}

// NewClassifier creates a Classifier with the given thresholds.
func NewClassifier(t Thresholds) Classifier {
	return Classifier{t: t}
}

// Classify evaluates the hazard rules in fixed precedence, first match wins.
// The reason string identifies the exact rule (and for cloudburst, the exact
// disjunct) that fired, for observability and alert messages.
func (c Classifier) Classify(r SensorReading) (Severity, string) {
	if r.Rainfall > c.t.CloudburstRainfall {
		return SeverityCloudburst, fmt.Sprintf(
			"rainfall %g mm/hr exceeds %g mm/hr", r.Rainfall, c.t.CloudburstRainfall)
	}
	if r.Humidity > c.t.CloudburstHumidity && r.Pressure < c.t.CloudburstPressure {
		return SeverityCloudburst, fmt.Sprintf(
			"humidity %g%% above %g%% with pressure %g hPa below %g hPa",
			r.Humidity, c.t.CloudburstHumidity, r.Pressure, c.t.CloudburstPressure)
	}
	if r.Rainfall >= c.t.WarningRainfall && r.Rainfall <= c.t.CloudburstRainfall {
		return SeverityWarning, fmt.Sprintf(
			"rainfall %g mm/hr within warning band [%g, %g]",
			r.Rainfall, c.t.WarningRainfall, c.t.CloudburstRainfall)
	}
	return SeveritySafe, "all measurements within safe limits"
}
