package history_test

import (
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
	"github.com/couchcryptid/cloudburst-warning-service/internal/history"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readingWithRainfall(rainfall float64) domain.SensorReading {
	return domain.SensorReading{Rainfall: rainfall, Humidity: 60, Temperature: 24, Pressure: 1012}
}

func TestStore_AppendAndSnapshot(t *testing.T) {
	s := history.NewStore(50, clockwork.NewFakeClockAt(time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)))

	for i := 0; i < 3; i++ {
		s.Append(readingWithRainfall(float64(i)), domain.SeveritySafe, "all measurements within safe limits")
	}

	require.Equal(t, 3, s.Len())

	got := s.Snapshot(50)
	require.Len(t, got, 3)
	// Oldest first, newest last.
	assert.Equal(t, 0.0, got[0].Data.Rainfall)
	assert.Equal(t, 2.0, got[2].Data.Rainfall)
}

func TestStore_SnapshotClampsN(t *testing.T) {
	s := history.NewStore(50, clockwork.NewFakeClock())
	s.Append(readingWithRainfall(1), domain.SeveritySafe, "ok")

	assert.Empty(t, s.Snapshot(0))
	assert.Empty(t, s.Snapshot(-3))
	assert.Len(t, s.Snapshot(100), 1)
}

func TestStore_SnapshotReturnsMostRecent(t *testing.T) {
	s := history.NewStore(50, clockwork.NewFakeClock())
	for i := 0; i < 10; i++ {
		s.Append(readingWithRainfall(float64(i)), domain.SeveritySafe, "ok")
	}

	got := s.Snapshot(3)
	require.Len(t, got, 3)
	assert.Equal(t, 7.0, got[0].Data.Rainfall)
	assert.Equal(t, 9.0, got[2].Data.Rainfall)
}

func TestStore_FIFOEvictionAtCapacity(t *testing.T) {
	s := history.NewStore(50, clockwork.NewFakeClock())

	for i := 0; i < 80; i++ {
		s.Append(readingWithRainfall(float64(i)), domain.SeveritySafe, "ok")
		assert.LessOrEqual(t, s.Len(), 50)
	}

	require.Equal(t, 50, s.Len())

	got := s.Snapshot(50)
	require.Len(t, got, 50)
	// Records 0..29 were evicted; 30..79 remain in append order.
	assert.Equal(t, 30.0, got[0].Data.Rainfall)
	assert.Equal(t, 79.0, got[49].Data.Rainfall)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1].Data.Rainfall+1, got[i].Data.Rainfall)
	}
}

func TestStore_TimestampsNonDecreasing(t *testing.T) {
	fc := clockwork.NewFakeClockAt(time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC))
	s := history.NewStore(50, fc)

	s.Append(readingWithRainfall(1), domain.SeveritySafe, "ok")
	fc.Advance(time.Second)
	s.Append(readingWithRainfall(2), domain.SeveritySafe, "ok")

	got := s.Snapshot(2)
	assert.True(t, got[1].Timestamp.After(got[0].Timestamp))
}

func TestStore_ConcurrentAppendsNoLossNoDuplicates(t *testing.T) {
	const (
		producers          = 8
		appendsPerProducer = 200
	)

	s := history.NewStore(50, clockwork.NewRealClock())

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < appendsPerProducer; i++ {
				s.Append(readingWithRainfall(float64(p*appendsPerProducer+i)), domain.SeverityWarning, "ok")
			}
		}(p)
	}

	// Concurrent readers must never observe a torn or over-capacity view.
	done := make(chan struct{})
	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := s.Snapshot(50)
				assert.LessOrEqual(t, len(snap), 50)
				for i := 1; i < len(snap); i++ {
					assert.False(t, snap[i].Timestamp.Before(snap[i-1].Timestamp))
				}
			}
		}()
	}

	wg.Wait()
	close(done)
	readers.Wait()

	require.Equal(t, 50, s.Len())

	// Every surviving record is intact and distinct.
	seen := make(map[float64]bool)
	for _, rec := range s.Snapshot(50) {
		assert.False(t, seen[rec.Data.Rainfall], "duplicate record %g", rec.Data.Rainfall)
		seen[rec.Data.Rainfall] = true
		assert.Equal(t, 60.0, rec.Data.Humidity)
		assert.Equal(t, 1012.0, rec.Data.Pressure)
		assert.Equal(t, domain.SeverityWarning, rec.Status)
	}
}

func TestStore_ConcurrentDistinctReadingsAllVisible(t *testing.T) {
	const m = 50

	s := history.NewStore(50, clockwork.NewRealClock())

	var wg sync.WaitGroup
	for i := 0; i < m; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append(readingWithRainfall(float64(i)), domain.SeveritySafe, "ok")
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot(m)
	require.Len(t, snap, m)

	seen := make(map[float64]bool, m)
	for _, rec := range snap {
		seen[rec.Data.Rainfall] = true
	}
	assert.Len(t, seen, m, "every submitted reading appears exactly once")
}

func TestStore_DefaultsOnBadArguments(t *testing.T) {
	s := history.NewStore(0, nil)
	assert.Equal(t, history.DefaultCapacity, s.Capacity())
}
