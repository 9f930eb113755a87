package kv

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
)

// Store is the durable key-value boundary every snapshot goes through.
// Load reports ok=false with a nil error when the key has never been saved.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Get decodes the snapshot stored under key into v.
func Get(ctx context.Context, store Store, key string, v any) (bool, error) {
	raw, ok, err := store.Load(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Put encodes v and saves it under key.
func Put(ctx context.Context, store Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Save(ctx, key, raw)
}
