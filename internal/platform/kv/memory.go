package kv

import (
	"context"
	"sync"
)

type MemoryStore struct {
	writes serial
	mu     sync.RWMutex
	data   map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, value []byte) error {
	return s.writes.within(ctx, func(context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.data[key] = append([]byte(nil), value...)
		return nil
	})
}

func (s *MemoryStore) Within(ctx context.Context, fn func(context.Context) error) error {
	return s.writes.within(ctx, fn)
}
