package out

import (
	"context"

	"upmind/internal/modules/xp/domain"
	xpout "upmind/internal/modules/xp/port/out"
	"upmind/internal/platform/kv"
	"upmind/internal/platform/tx"
)

const LedgerKey = "upmind-xp"

type KVLedgerStore struct {
	store kv.Store
}

func NewKVLedgerStore(store kv.Store) xpout.LedgerStore {
	return &KVLedgerStore{store: store}
}

func (s *KVLedgerStore) Load(ctx context.Context) (domain.Ledger, bool, error) {
	ledger := domain.Ledger{}
	ok, err := kv.Get(ctx, s.store, LedgerKey, &ledger)
	if err != nil || !ok {
		return domain.Ledger{}, false, err
	}
	return ledger, true, nil
}

func (s *KVLedgerStore) Save(ctx context.Context, ledger domain.Ledger) error {
	return kv.Put(ctx, s.store, LedgerKey, ledger)
}

// Within orders this snapshot's writes with every other write to the
// underlying store.
func (s *KVLedgerStore) Within(ctx context.Context, fn func(context.Context) error) error {
	return tx.For(s.store).Within(ctx, fn)
}
