// Package simulator generates synthetic sensor readings following weather
// patterns, for demos and load tests of the ingestion endpoint. It is a
// producer only; it never touches the core pipeline directly.
package simulator

import (
	"math/rand/v2"

	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
)

// pattern describes the value ranges of one weather regime.
type pattern struct {
	name          string
	weight        float64
	rainfallMin   float64
	rainfallMax   float64
	humidityMin   float64
	humidityMax   float64
	pressureMin   float64
	pressureMax   float64
	temperatureLo float64
	temperatureHi float64
}

// Pattern weights skew heavily benign: mostly clear or cloudy weather with
// occasional storms and rare cloudburst conditions.
var patterns = []pattern{
	{name: "clear", weight: 0.30, rainfallMin: 0, rainfallMax: 5, humidityMin: 50, humidityMax: 70, pressureMin: 1010, pressureMax: 1025, temperatureLo: 22, temperatureHi: 30},
	{name: "cloudy", weight: 0.30, rainfallMin: 0, rainfallMax: 10, humidityMin: 65, humidityMax: 80, pressureMin: 1005, pressureMax: 1015, temperatureLo: 18, temperatureHi: 26},
	{name: "rainy", weight: 0.25, rainfallMin: 5, rainfallMax: 30, humidityMin: 75, humidityMax: 90, pressureMin: 995, pressureMax: 1010, temperatureLo: 18, temperatureHi: 26},
	{name: "storm", weight: 0.10, rainfallMin: 25, rainfallMax: 60, humidityMin: 85, humidityMax: 95, pressureMin: 980, pressureMax: 1000, temperatureLo: 15, temperatureHi: 22},
	{name: "cloudburst", weight: 0.05, rainfallMin: 50, rainfallMax: 100, humidityMin: 90, humidityMax: 100, pressureMin: 980, pressureMax: 995, temperatureLo: 15, temperatureHi: 22},
}

// Generator produces readings that stay within one weather pattern for a
// handful of ticks before transitioning, so consecutive readings look like
// a coherent weather sequence rather than white noise.
type Generator struct {
	rng       *rand.Rand
	current   pattern
	remaining int
}

// New creates a Generator seeded from the given source. Pass a fixed seed
// for reproducible sequences.
func New(seed uint64) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	g.current = g.pickPattern()
	g.remaining = g.patternDuration()
	return g
}

// Next returns one synthetic raw reading and advances the pattern state.
func (g *Generator) Next() domain.RawReading {
	if g.remaining <= 0 {
		g.current = g.pickPattern()
		g.remaining = g.patternDuration()
	}
	g.remaining--

	p := g.current
	rainfall := g.uniform(p.rainfallMin, p.rainfallMax)
	humidity := g.uniform(p.humidityMin, p.humidityMax)
	pressure := g.uniform(p.pressureMin, p.pressureMax)
	temperature := g.uniform(p.temperatureLo, p.temperatureHi)

	return domain.RawReading{
		Rainfall:    &rainfall,
		Humidity:    &humidity,
		Temperature: &temperature,
		Pressure:    &pressure,
	}
}

// Pattern returns the name of the active weather pattern.
func (g *Generator) Pattern() string {
	return g.current.name
}

func (g *Generator) pickPattern() pattern {
	r := g.rng.Float64()
	acc := 0.0
	for _, p := range patterns {
		acc += p.weight
		if r < acc {
			return p
		}
	}
	return patterns[len(patterns)-1]
}

// patternDuration picks how many readings the current pattern persists,
// uniform over [5, 15].
func (g *Generator) patternDuration() int {
	return 5 + g.rng.IntN(11)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}
