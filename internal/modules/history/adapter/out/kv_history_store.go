package out

import (
	"context"

	"upmind/internal/modules/history/domain"
	historyout "upmind/internal/modules/history/port/out"
	"upmind/internal/platform/kv"
	"upmind/internal/platform/tx"
)

const TasksKey = "upmind-tasks"

type KVHistoryStore struct {
	store kv.Store
}

func NewKVHistoryStore(store kv.Store) historyout.HistoryStore {
	return &KVHistoryStore{store: store}
}

func (s *KVHistoryStore) Load(ctx context.Context) (domain.History, bool, error) {
	history := domain.History{}
	ok, err := kv.Get(ctx, s.store, TasksKey, &history)
	if err != nil || !ok {
		return domain.History{}, false, err
	}
	return history, true, nil
}

func (s *KVHistoryStore) Save(ctx context.Context, history domain.History) error {
	return kv.Put(ctx, s.store, TasksKey, history)
}

// Within orders this snapshot's writes with every other write to the
// underlying store.
func (s *KVHistoryStore) Within(ctx context.Context, fn func(context.Context) error) error {
	return tx.For(s.store).Within(ctx, fn)
}
