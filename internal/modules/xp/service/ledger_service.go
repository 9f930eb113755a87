package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"upmind/internal/modules/xp/domain"
	xpout "upmind/internal/modules/xp/port/out"
	"upmind/internal/platform/logging"
	"upmind/internal/platform/metrics"
	"upmind/internal/platform/tx"
)

const storeLabel = "xp"

// LedgerService owns the in-memory ledger. Memory is authoritative: a
// failed save is logged and the next mutation writes the whole snapshot again.
// mu guards memory only and is never held across a store call; saves
// snapshot the ledger inside the store's write order instead.
type LedgerService struct {
	mu      sync.Mutex
	store   xpout.LedgerStore
	tx      tx.Manager
	logger  *zap.Logger
	metrics *metrics.Recorder
	ledger  domain.Ledger
}

func NewLedgerService(ctx context.Context, store xpout.LedgerStore, logger *zap.Logger, rec *metrics.Recorder) *LedgerService {
	s := &LedgerService{store: store, tx: tx.For(store), logger: logging.OrNop(logger).Named("xp"), metrics: rec, ledger: domain.NewLedger()}
	loaded, ok, err := store.Load(ctx)
	switch {
	case err != nil:
		s.logger.Warn("load ledger snapshot, starting fresh", zap.Error(err))
	case ok:
		loaded.Normalize()
		s.ledger = loaded
	}
	return s
}

func (s *LedgerService) Add(ctx context.Context, category domain.Category, amount int) (domain.Ledger, error) {
	s.mu.Lock()
	if err := s.ledger.Add(category, amount); err != nil {
		ledger := s.ledger
		s.mu.Unlock()
		return ledger, err
	}
	ledger := s.ledger
	s.mu.Unlock()

	s.metrics.XPAwarded(string(category), amount)
	s.persist(ctx)
	return ledger, nil
}

func (s *LedgerService) Snapshot() domain.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger
}

func (s *LedgerService) Reset(ctx context.Context) domain.Ledger {
	s.mu.Lock()
	s.ledger = domain.NewLedger()
	ledger := s.ledger
	s.mu.Unlock()

	s.persist(ctx)
	return ledger
}

func (s *LedgerService) persist(ctx context.Context) {
	var saved domain.Ledger
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		saved = s.Snapshot()
		return s.store.Save(ctx, saved)
	})
	if err != nil {
		s.metrics.PersistFailure(storeLabel)
		s.logger.Error("save ledger snapshot", zap.Error(err), zap.Int("total_xp", saved.TotalXP))
	}
}
