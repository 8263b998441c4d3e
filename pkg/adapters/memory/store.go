package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/cadence/pkg/ports"
)

// Store implements ports.HistoryStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]ports.MetricRecord
	mu   sync.RWMutex
}

var _ ports.HistoryStore = (*Store)(nil)

// NewStore creates a new in-memory history store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]ports.MetricRecord),
	}
}

// Append stores the records under their run IDs.
func (s *Store) Append(ctx context.Context, records ...ports.MetricRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.data[r.RunID] = append(s.data[r.RunID], r)
	}
	return nil
}

// Query returns a copy of the records of runID so callers can't mutate the store.
func (s *Store) Query(ctx context.Context, runID string) ([]ports.MetricRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.data[runID]
	if !ok {
		return nil, ports.ErrRunNotFound
	}
	out := make([]ports.MetricRecord, len(records))
	copy(out, records)
	return out, nil
}

// Runs returns the known run IDs, sorted.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.data))
	for id := range s.data {
		runs = append(runs, id)
	}
	sort.Strings(runs)
	return runs, nil
}
