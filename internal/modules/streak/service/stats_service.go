package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"upmind/internal/modules/streak/domain"
	streakout "upmind/internal/modules/streak/port/out"
	"upmind/internal/platform/clock"
	"upmind/internal/platform/logging"
	"upmind/internal/platform/metrics"
	"upmind/internal/platform/tx"
)

type StatsService struct {
	mu      sync.Mutex
	clock   clock.Clock
	store   streakout.StatsStore
	tx      tx.Manager
	logger  *zap.Logger
	metrics *metrics.Recorder
	stats   domain.Stats
}

func NewStatsService(ctx context.Context, clk clock.Clock, store streakout.StatsStore, logger *zap.Logger, rec *metrics.Recorder) *StatsService {
	s := &StatsService{clock: clk, store: store, tx: tx.For(store), logger: logging.OrNop(logger).Named("streak"), metrics: rec}
	loaded, ok, err := store.Load(ctx)
	switch {
	case err != nil:
		s.logger.Warn("load session stats, starting fresh", zap.Error(err))
	case ok:
		loaded.Normalize()
		s.stats = loaded
	}
	return s
}

func (s *StatsService) CompleteSession(ctx context.Context, minutes int) (domain.Stats, error) {
	s.mu.Lock()
	err := s.stats.CompleteSession(s.clock.Now(), minutes)
	stats := s.stats
	s.mu.Unlock()
	if err != nil {
		return stats, err
	}

	s.metrics.SessionCompleted()
	s.logger.Debug("session completed",
		zap.Int("minutes", minutes),
		zap.Int("current_streak", stats.CurrentStreak),
		zap.Int("sessions_today", stats.SessionsToday))
	s.persist(ctx)
	return stats, nil
}

func (s *StatsService) Snapshot() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *StatsService) TodaySessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.TodaySessionCount(s.clock.Now())
}

func (s *StatsService) ResetStreaks(ctx context.Context) domain.Stats {
	s.mu.Lock()
	s.stats.ResetStreaks()
	stats := s.stats
	s.mu.Unlock()

	s.persist(ctx)
	return stats
}

func (s *StatsService) Reset(ctx context.Context) domain.Stats {
	s.mu.Lock()
	s.stats = domain.Stats{}
	s.mu.Unlock()

	s.persist(ctx)
	return domain.Stats{}
}

func (s *StatsService) persist(ctx context.Context) {
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		return s.store.Save(ctx, s.Snapshot())
	})
	if err != nil {
		s.metrics.PersistFailure("sessions")
		s.logger.Error("save session stats", zap.Error(err))
	}
}
