package store

import (
	"context"
	"sync"

	"deeplink/internal/lookup/models"
)

// MemoryStore keeps records in two in-memory indexes, mirroring the indexed
// columns of the SQL implementations. It backs unit tests and the "memory"
// driver; it intentionally favors clarity over performance.
type MemoryStore struct {
	mu      sync.RWMutex
	byPhone map[string][]models.Record
	byAlt   map[string][]models.Record
	count   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byPhone: make(map[string][]models.Record),
		byAlt:   make(map[string][]models.Record),
	}
}

// Add indexes a record under both its primary and alternate identifier.
// Seeding happens before serving; reads never mutate.
func (s *MemoryStore) Add(records ...models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.byPhone[r.Phone] = append(s.byPhone[r.Phone], r)
		if r.AltPhone != "" {
			s.byAlt[r.AltPhone] = append(s.byAlt[r.AltPhone], r)
		}
		s.count++
	}
}

func (s *MemoryStore) FindByPhone(_ context.Context, phone string) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRecords(s.byPhone[phone]), nil
}

func (s *MemoryStore) FindByAltPhone(_ context.Context, phone string) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRecords(s.byAlt[phone]), nil
}

func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count, nil
}

func (s *MemoryStore) Health(_ context.Context) error {
	return nil
}

func copyRecords(in []models.Record) []models.Record {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Record, len(in))
	copy(out, in)
	return out
}
