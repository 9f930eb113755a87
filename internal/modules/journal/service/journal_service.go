package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"upmind/internal/modules/journal/domain"
	journalout "upmind/internal/modules/journal/port/out"
	"upmind/internal/platform/clock"
	"upmind/internal/platform/id"
	"upmind/internal/platform/logging"
	"upmind/internal/platform/metrics"
	"upmind/internal/platform/tx"
)

type JournalService struct {
	mu      sync.Mutex
	clock   clock.Clock
	ids     id.Generator
	store   journalout.JournalStore
	tx      tx.Manager
	logger  *zap.Logger
	metrics *metrics.Recorder
	journal domain.Journal
}

func NewJournalService(ctx context.Context, clk clock.Clock, ids id.Generator, store journalout.JournalStore, logger *zap.Logger, rec *metrics.Recorder) *JournalService {
	s := &JournalService{clock: clk, ids: ids, store: store, tx: tx.For(store), logger: logging.OrNop(logger).Named("journal"), metrics: rec}
	loaded, ok, err := store.Load(ctx)
	switch {
	case err != nil:
		s.logger.Warn("load journal, starting fresh", zap.Error(err))
	case ok:
		s.journal = loaded
	}
	return s
}

func (s *JournalService) Add(ctx context.Context, content string, mood domain.Mood, tags []string) (domain.Entry, error) {
	s.mu.Lock()
	entry := domain.Entry{
		ID:        s.ids.New(),
		Content:   content,
		Mood:      mood,
		CreatedAt: s.clock.Now().UTC(),
		Tags:      append([]string{}, tags...),
	}
	err := s.journal.Add(entry)
	s.mu.Unlock()
	if err != nil {
		return domain.Entry{}, err
	}

	s.logger.Debug("journal entry added", zap.String("entry_id", entry.ID), zap.String("mood", string(mood)))
	s.persist(ctx)
	return entry, nil
}

func (s *JournalService) Recent(limit int) []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.journal.Entries
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return append([]domain.Entry(nil), entries...)
}

func (s *JournalService) ForDate(date string) []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.ForDate(date)
}

func (s *JournalService) Find(entryID string) (domain.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.Find(entryID)
}

// Today reports the streak, total and whether anything was written today,
// all against one reading of the clock.
func (s *JournalService) Today() (streak, total int, journaled bool, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now = s.clock.Now()
	return s.journal.StreakDays(now), s.journal.Total(), len(s.journal.ForDate(clock.DateKey(now))) > 0, now
}

func (s *JournalService) Reset(ctx context.Context) {
	s.mu.Lock()
	s.journal = domain.Journal{}
	s.mu.Unlock()
	s.persist(ctx)
}

func (s *JournalService) snapshot() domain.Journal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Journal{Entries: append([]domain.Entry(nil), s.journal.Entries...)}
}

func (s *JournalService) persist(ctx context.Context) {
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		return s.store.Save(ctx, s.snapshot())
	})
	if err != nil {
		s.metrics.PersistFailure("journal")
		s.logger.Error("save journal", zap.Error(err))
	}
}
