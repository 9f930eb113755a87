package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"upmind/internal/modules/history/domain"
	historyout "upmind/internal/modules/history/port/out"
	"upmind/internal/platform/clock"
	"upmind/internal/platform/logging"
	"upmind/internal/platform/metrics"
	"upmind/internal/platform/tx"
)

type HistoryService struct {
	mu      sync.Mutex
	clock   clock.Clock
	store   historyout.HistoryStore
	tx      tx.Manager
	logger  *zap.Logger
	metrics *metrics.Recorder
	history domain.History
}

func NewHistoryService(ctx context.Context, clk clock.Clock, store historyout.HistoryStore, logger *zap.Logger, rec *metrics.Recorder) *HistoryService {
	s := &HistoryService{clock: clk, store: store, tx: tx.For(store), logger: logging.OrNop(logger).Named("history"), metrics: rec}
	loaded, ok, err := store.Load(ctx)
	switch {
	case err != nil:
		s.logger.Warn("load task history, starting fresh", zap.Error(err))
	case ok:
		s.history = loaded
	}
	return s
}

func (s *HistoryService) Complete(ctx context.Context, taskID string, xpEarned int, activityType string) (domain.Entry, error) {
	s.mu.Lock()
	entry := domain.Entry{
		ID:           taskID,
		CompletedAt:  s.clock.Now().UTC(),
		XPEarned:     xpEarned,
		ActivityType: activityType,
	}
	err := s.history.Append(entry)
	s.mu.Unlock()
	if err != nil {
		return domain.Entry{}, err
	}

	s.logger.Debug("task completed", zap.String("task_id", taskID), zap.Int("xp", xpEarned))
	s.persist(ctx)
	return entry, nil
}

func (s *HistoryService) IsCompleted(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.IsCompleted(taskID)
}

func (s *HistoryService) CompletedToday() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CompletedOn(clock.DateKey(s.clock.Now()))
}

func (s *HistoryService) Recent(limit int) []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Recent(limit)
}

func (s *HistoryService) Reset(ctx context.Context) {
	s.mu.Lock()
	s.history = domain.History{}
	s.mu.Unlock()
	s.persist(ctx)
}

func (s *HistoryService) snapshot() domain.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.History{Entries: append([]domain.Entry(nil), s.history.Entries...)}
}

func (s *HistoryService) persist(ctx context.Context) {
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		return s.store.Save(ctx, s.snapshot())
	})
	if err != nil {
		s.metrics.PersistFailure("tasks")
		s.logger.Error("save task history", zap.Error(err))
	}
}
