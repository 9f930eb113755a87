package out

import (
	"context"

	"upmind/internal/modules/streak/domain"
	streakout "upmind/internal/modules/streak/port/out"
	"upmind/internal/platform/kv"
	"upmind/internal/platform/tx"
)

const StatsKey = "upmind-sessions"

type KVStatsStore struct {
	store kv.Store
}

func NewKVStatsStore(store kv.Store) streakout.StatsStore {
	return &KVStatsStore{store: store}
}

func (s *KVStatsStore) Load(ctx context.Context) (domain.Stats, bool, error) {
	stats := domain.Stats{}
	ok, err := kv.Get(ctx, s.store, StatsKey, &stats)
	if err != nil || !ok {
		return domain.Stats{}, false, err
	}
	return stats, true, nil
}

func (s *KVStatsStore) Save(ctx context.Context, stats domain.Stats) error {
	return kv.Put(ctx, s.store, StatsKey, stats)
}

// Within orders this snapshot's writes with every other write to the
// underlying store.
func (s *KVStatsStore) Within(ctx context.Context, fn func(context.Context) error) error {
	return tx.For(s.store).Within(ctx, fn)
}
