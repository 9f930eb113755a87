package tx

import "context"

// Manager groups the snapshot writes of one logical event.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// For returns backend as a Manager when it supports transactions,
// otherwise a NoopManager.
func For(backend any) Manager {
	if m, ok := backend.(Manager); ok && m != nil {
		return m
	}
	return NoopManager{}
}
