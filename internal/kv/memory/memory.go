// Package memory provides a map-backed key-value store used for development
// and tests. It keeps code paths easy to follow while allowing a real
// backend to be plugged in later.
package memory

import (
	"context"
	"sync"
)

// Store is an in-memory kv.Store guarded by an RWMutex.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

func (s *Store) Ready(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
