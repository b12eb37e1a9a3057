package simulator_test

import (
	"testing"

	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
	"github.com/couchcryptid/cloudburst-warning-service/internal/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_ReadingsAlwaysValid(t *testing.T) {
	g := simulator.New(1)

	for i := 0; i < 1000; i++ {
		raw := g.Next()
		_, err := domain.ValidateReading(raw)
		require.NoError(t, err, "iteration %d, pattern %s", i, g.Pattern())
	}
}

func TestGenerator_ValuesWithinPhysicalRanges(t *testing.T) {
	g := simulator.New(42)

	for i := 0; i < 1000; i++ {
		raw := g.Next()
		require.NotNil(t, raw.Rainfall)
		require.NotNil(t, raw.Humidity)
		require.NotNil(t, raw.Temperature)
		require.NotNil(t, raw.Pressure)

		assert.GreaterOrEqual(t, *raw.Rainfall, 0.0)
		assert.LessOrEqual(t, *raw.Rainfall, 100.0)
		assert.GreaterOrEqual(t, *raw.Humidity, 50.0)
		assert.LessOrEqual(t, *raw.Humidity, 100.0)
		assert.GreaterOrEqual(t, *raw.Pressure, 980.0)
		assert.LessOrEqual(t, *raw.Pressure, 1025.0)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a, b := simulator.New(7), simulator.New(7)

	for i := 0; i < 100; i++ {
		ra, rb := a.Next(), b.Next()
		assert.Equal(t, *ra.Rainfall, *rb.Rainfall)
		assert.Equal(t, *ra.Pressure, *rb.Pressure)
	}
}

func TestGenerator_VisitsMultiplePatterns(t *testing.T) {
	g := simulator.New(3)

	seen := map[string]bool{}
	for i := 0; i < 2000; i++ {
		g.Next()
		seen[g.Pattern()] = true
	}
	// With 2000 draws the common patterns always appear.
	assert.True(t, seen["clear"] || seen["cloudy"])
	assert.GreaterOrEqual(t, len(seen), 3, "expected pattern transitions, got %v", seen)
}
