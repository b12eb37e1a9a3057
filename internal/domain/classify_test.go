package domain_test

import (
	"testing"

	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func defaultClassifier() domain.Classifier {
	return domain.NewClassifier(domain.DefaultThresholds())
}

func reading(rainfall, humidity, temperature, pressure float64) domain.SensorReading {
	return domain.SensorReading{
		Rainfall:    rainfall,
		Humidity:    humidity,
		Temperature: temperature,
		Pressure:    pressure,
	}
}

func TestClassify_RainfallAboveFiftyIsCloudburst(t *testing.T) {
	c := defaultClassifier()

	// High rainfall dominates regardless of humidity and pressure.
	cases := []domain.SensorReading{
		reading(50.1, 0, 25, 1020),
		reading(55, 80, 20, 1005),
		reading(100, 50, 30, 1025),
	}
	for _, r := range cases {
		severity, reason := c.Classify(r)
		assert.Equal(t, domain.SeverityCloudburst, severity, "reading %+v", r)
		assert.Contains(t, reason, "rainfall")
		assert.Contains(t, reason, "exceeds")
	}
}

func TestClassify_HumidityPressureComboIsCloudburst(t *testing.T) {
	c := defaultClassifier()

	severity, reason := c.Classify(reading(25, 90, 18, 995))
	assert.Equal(t, domain.SeverityCloudburst, severity)
	assert.Contains(t, reason, "humidity")
	assert.Contains(t, reason, "pressure")

	// Combo fires even with zero rainfall.
	severity, _ = c.Classify(reading(0, 86, 22, 999.9))
	assert.Equal(t, domain.SeverityCloudburst, severity)
}

func TestClassify_Boundaries(t *testing.T) {
	c := defaultClassifier()

	tests := []struct {
		name string
		r    domain.SensorReading
		want domain.Severity
	}{
		{"rainfall exactly 50 is warning, not cloudburst", reading(50, 60, 25, 1015), domain.SeverityWarning},
		{"rainfall exactly 20 is warning", reading(20, 60, 25, 1015), domain.SeverityWarning},
		{"rainfall just below 20 is safe", reading(19.99, 60, 25, 1015), domain.SeveritySafe},
		{"humidity exactly 85 does not satisfy combo", reading(10, 85, 25, 990), domain.SeveritySafe},
		{"pressure exactly 1000 does not satisfy combo", reading(10, 90, 25, 1000), domain.SeveritySafe},
		{"humidity above 85 but pressure at 1000 stays safe", reading(0, 99, 25, 1000), domain.SeveritySafe},
		{"rainfall 50 with combo satisfied is cloudburst", reading(50, 90, 25, 995), domain.SeverityCloudburst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, _ := c.Classify(tt.r)
			assert.Equal(t, tt.want, severity)
		})
	}
}

func TestClassify_WarningBand(t *testing.T) {
	c := defaultClassifier()

	for _, rainfall := range []float64{20, 25, 35, 49.9, 50} {
		severity, reason := c.Classify(reading(rainfall, 70, 22, 1010))
		assert.Equal(t, domain.SeverityWarning, severity, "rainfall %g", rainfall)
		assert.Contains(t, reason, "warning band")
	}
}

func TestClassify_Safe(t *testing.T) {
	c := defaultClassifier()

	severity, reason := c.Classify(reading(15, 65, 25, 1015))
	assert.Equal(t, domain.SeveritySafe, severity)
	assert.Equal(t, "all measurements within safe limits", reason)
}

func TestClassify_TemperatureIsIgnored(t *testing.T) {
	c := defaultClassifier()

	cold, _ := c.Classify(reading(15, 65, -40, 1015))
	hot, _ := c.Classify(reading(15, 65, 55, 1015))
	assert.Equal(t, cold, hot)
	assert.Equal(t, domain.SeveritySafe, cold)
}

func TestClassify_CustomThresholds(t *testing.T) {
	c := domain.NewClassifier(domain.Thresholds{
		WarningRainfall:    5,
		CloudburstRainfall: 10,
		CloudburstHumidity: 70,
		CloudburstPressure: 1010,
	})

	severity, _ := c.Classify(reading(11, 50, 25, 1020))
	assert.Equal(t, domain.SeverityCloudburst, severity)

	severity, _ = c.Classify(reading(5, 50, 25, 1020))
	assert.Equal(t, domain.SeverityWarning, severity)
}

func TestSeverity_Ordering(t *testing.T) {
	assert.Less(t, domain.SeveritySafe, domain.SeverityWarning)
	assert.Less(t, domain.SeverityWarning, domain.SeverityCloudburst)
}

func TestSeverity_WireFormat(t *testing.T) {
	assert.Equal(t, "safe", domain.SeveritySafe.String())
	assert.Equal(t, "warning", domain.SeverityWarning.String())
	assert.Equal(t, "cloudburst_detected", domain.SeverityCloudburst.String())
}
