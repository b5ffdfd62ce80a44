package store

import (
	"sync"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
)

// MemoryStore is an in-memory SegmentStore. Used for teamless/ephemeral play
// and in tests; the sqlite-backed repository is the durable implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.SegmentRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.SegmentRecord)}
}

// Get returns the record for id, or (nil, nil) if absent.
func (s *MemoryStore) Get(id string) (*models.SegmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	// Copy so callers cannot mutate stored state without a Put.
	out := rec
	return &out, nil
}

// Put inserts or replaces the record keyed by its id.
func (s *MemoryStore) Put(record *models.SegmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.ID] = *record
	return nil
}

// ListAll returns every stored record.
func (s *MemoryStore) ListAll() ([]models.SegmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SegmentRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out, nil
}

// Contains reports whether a record with the id exists.
func (s *MemoryStore) Contains(id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[id]
	return ok, nil
}
