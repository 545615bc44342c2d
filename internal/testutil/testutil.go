package testutil

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// MemoryKVStore is an in-memory KVStore with optional write failures
type MemoryKVStore struct {
	mu       sync.Mutex
	values   map[string]string
	writes   int
	WriteErr error
	ReadErr  error
}

// NewMemoryKVStore creates a store seeded with values
func NewMemoryKVStore(values map[string]string) *MemoryKVStore {
	s := &MemoryKVStore{values: map[string]string{}}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *MemoryKVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return "", false, s.ReadErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryKVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.values[key] = value
	s.writes++
	return nil
}

func (s *MemoryKVStore) SetMany(_ context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	for k, v := range values {
		s.values[k] = v
	}
	s.writes++
	return nil
}

// Value returns the stored value for key
func (s *MemoryKVStore) Value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// Writes returns the number of successful write calls
func (s *MemoryKVStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
