package answers

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store for runs without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	buckets  map[string][]Record
	location string
}

func NewMemoryStore(location string) *MemoryStore {
	return &MemoryStore{buckets: make(map[string][]Record), location: location}
}

func (s *MemoryStore) Read(_ context.Context) (Bank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bank := make(Bank, len(s.buckets))
	for name, records := range s.buckets {
		bank[name] = ToMap(records)
	}
	return bank, nil
}

func (s *MemoryStore) Records(_ context.Context, community string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record(nil), s.buckets[community]...), nil
}

func (s *MemoryStore) Write(_ context.Context, community string, records []Record) (string, error) {
	if len(records) == 0 {
		return s.location, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if merged := Merge(s.buckets[community], records); len(merged) > 0 {
		s.buckets[community] = merged
	}
	return s.location, nil
}
