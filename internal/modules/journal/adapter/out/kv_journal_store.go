package out

import (
	"context"

	"upmind/internal/modules/journal/domain"
	journalout "upmind/internal/modules/journal/port/out"
	"upmind/internal/platform/kv"
	"upmind/internal/platform/tx"
)

const JournalKey = "upmind-journal"

type KVJournalStore struct {
	store kv.Store
}

func NewKVJournalStore(store kv.Store) journalout.JournalStore {
	return &KVJournalStore{store: store}
}

func (s *KVJournalStore) Load(ctx context.Context) (domain.Journal, bool, error) {
	journal := domain.Journal{}
	ok, err := kv.Get(ctx, s.store, JournalKey, &journal)
	if err != nil || !ok {
		return domain.Journal{}, false, err
	}
	return journal, true, nil
}

func (s *KVJournalStore) Save(ctx context.Context, journal domain.Journal) error {
	return kv.Put(ctx, s.store, JournalKey, journal)
}

// Within orders this snapshot's writes with every other write to the
// underlying store.
func (s *KVJournalStore) Within(ctx context.Context, fn func(context.Context) error) error {
	return tx.For(s.store).Within(ctx, fn)
}
