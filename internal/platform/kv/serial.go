package kv

import (
	"context"
	"sync"
)

// serial orders snapshot writes made through one store. Within holds the
// lock for its whole callback and nested calls on the same store join it,
// so a writer that snapshots its state inside Within never overwrites a
// newer snapshot with an older one.
type serial struct {
	mu sync.Mutex
}

type heldKey struct{ s *serial }

func (s *serial) held(ctx context.Context) bool {
	held, _ := ctx.Value(heldKey{s}).(bool)
	return held
}

func (s *serial) within(ctx context.Context, fn func(context.Context) error) error {
	if s.held(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, heldKey{s}, true))
}
