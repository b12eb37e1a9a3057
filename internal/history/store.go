// Package history provides the bounded, concurrency-safe log of classified
// sensor readings shared by all producers and readers for the process
// lifetime. It holds no persistent state: the buffer starts empty on every
// restart.
package history

import (
	"sync"
	"time"

	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// DefaultCapacity is the rolling window size when none is configured.
const DefaultCapacity = 50

// Store is a fixed-capacity FIFO ring of classified records. Appends and
// snapshots are safe under arbitrary interleavings of concurrent callers;
// once the ring is full every append evicts the oldest record.
//
// The store owns timestamp assignment: stamping happens under the same lock
// as insertion, with each timestamp clamped to be no earlier than its
// predecessor, so insertion order and timestamp order never disagree even
// when the wall clock is read concurrently.
type Store struct {
	mu       sync.RWMutex
	clock    clockwork.Clock
	capacity int
	records  []domain.ClassifiedRecord // ring storage, len == capacity
	head     int                       // index of the oldest record
	size     int
	last     time.Time // timestamp of the newest record
}

// NewStore creates a Store with the given capacity. A nil clock falls back
// to the real clock; capacities below 1 fall back to DefaultCapacity.
func NewStore(capacity int, clock clockwork.Clock) *Store {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:    clock,
		capacity: capacity,
		records:  make([]domain.ClassifiedRecord, capacity),
	}
}

// Append stamps a classified reading and adds it as the newest record,
// evicting the oldest first when the ring is full. It returns the completed
// record, timestamp included.
func (s *Store) Append(reading domain.SensorReading, status domain.Severity, reason string) domain.ClassifiedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.clock.Now().UTC()
	if ts.Before(s.last) {
		ts = s.last
	}
	s.last = ts

	record := domain.ClassifiedRecord{
		Timestamp: ts,
		Data:      reading,
		Status:    status,
		Reason:    reason,
	}

	if s.size == s.capacity {
		// Overwrite the oldest slot and advance the head: FIFO eviction.
		s.records[s.head] = record
		s.head = (s.head + 1) % s.capacity
		return record
	}

	s.records[(s.head+s.size)%s.capacity] = record
	s.size++
	return record
}

// Snapshot returns copies of the n most recent records in insertion order,
// oldest first (newest last). n is clamped to [0, Len]. Each call observes
// a consistent point-in-time view of the ring.
func (s *Store) Snapshot(n int) []domain.ClassifiedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n < 0 {
		n = 0
	}
	if n > s.size {
		n = s.size
	}

	out := make([]domain.ClassifiedRecord, n)
	start := s.size - n
	for i := 0; i < n; i++ {
		out[i] = s.records[(s.head+start+i)%s.capacity]
	}
	return out
}

// Len returns the number of records currently retained.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Capacity returns the fixed ring capacity.
func (s *Store) Capacity() int {
	return s.capacity
}
