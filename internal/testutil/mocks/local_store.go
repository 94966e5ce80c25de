package mocks

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryLocalStore is an in-memory usecase.LocalStore. Values round-trip
// through JSON like the sqlite store does.
type MemoryLocalStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryLocalStore() *MemoryLocalStore {
	return &MemoryLocalStore{data: make(map[string][]byte)}
}

func (s *MemoryLocalStore) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (s *MemoryLocalStore) Put(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryLocalStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryLocalStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}
