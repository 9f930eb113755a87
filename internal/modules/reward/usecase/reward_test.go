package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	historyout "upmind/internal/modules/history/adapter/out"
	historyin "upmind/internal/modules/history/port/in"
	historyservice "upmind/internal/modules/history/service"
	historyusecase "upmind/internal/modules/history/usecase"
	journalout "upmind/internal/modules/journal/adapter/out"
	journalservice "upmind/internal/modules/journal/service"
	journalusecase "upmind/internal/modules/journal/usecase"
	rewardout "upmind/internal/modules/reward/adapter/out"
	"upmind/internal/modules/reward/dto"
	rewardin "upmind/internal/modules/reward/port/in"
	"upmind/internal/modules/reward/usecase"
	streakout "upmind/internal/modules/streak/adapter/out"
	streakin "upmind/internal/modules/streak/port/in"
	streakservice "upmind/internal/modules/streak/service"
	streakusecase "upmind/internal/modules/streak/usecase"
	xpdto "upmind/internal/modules/xp/dto"
	xpout "upmind/internal/modules/xp/adapter/out"
	xpin "upmind/internal/modules/xp/port/in"
	xpservice "upmind/internal/modules/xp/service"
	xpusecase "upmind/internal/modules/xp/usecase"
	apperrors "upmind/internal/platform/errors"
	"upmind/internal/platform/kv"
	"upmind/internal/platform/markdown"
	"upmind/internal/platform/tx"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type seqIDs struct{ n int }

func (s *seqIDs) New() string {
	s.n++
	return "id-" + strconv.Itoa(s.n)
}

type countingTx struct {
	tx.Manager
	mu    sync.Mutex
	calls int
}

func (c *countingTx) Within(ctx context.Context, fn func(context.Context) error) error {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.Manager.Within(ctx, fn)
}

type harness struct {
	reward  rewardin.Usecase
	xp      xpin.Usecase
	streak  streakin.Usecase
	history historyin.Usecase
	tx      *countingTx
	vault   string
}

func newHarness(t *testing.T, clk *fakeClock, store kv.Store, vault string) harness {
	t.Helper()
	ctx := context.Background()
	xpUC := xpusecase.NewInteractor(xpservice.NewLedgerService(ctx, xpout.NewKVLedgerStore(store), nil, nil))
	streakUC := streakusecase.NewInteractor(streakservice.NewStatsService(ctx, clk, streakout.NewKVStatsStore(store), nil, nil))
	historyUC := historyusecase.NewInteractor(historyservice.NewHistoryService(ctx, clk, historyout.NewKVHistoryStore(store), nil, nil))
	journalUC := journalusecase.NewInteractor(
		journalservice.NewJournalService(ctx, clk, &seqIDs{}, journalout.NewKVJournalStore(store), nil, nil),
		journalout.NewVaultExporter(vault),
	)
	counting := &countingTx{Manager: tx.For(store)}
	return harness{
		reward: usecase.NewInteractor(usecase.Dependencies{
			XP:       xpUC,
			Streak:   streakUC,
			History:  historyUC,
			Journal:  journalUC,
			Tx:       counting,
			Clock:    clk,
			Progress: rewardout.NewVaultProgressWriter(vault),
		}),
		xp:      xpUC,
		streak:  streakUC,
		history: historyUC,
		tx:      counting,
		vault:   vault,
	}
}

func TestCompleteTaskAwardsAndRecords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t, &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}, kv.NewMemoryStore(), t.TempDir())

	out, err := h.reward.CompleteTask(ctx, dto.CompleteTaskInput{
		TaskID:       "mini-1",
		ActivityType: "mini-task",
		Difficulty:   "hard",
		Note:         "Shipped the landing page copy today.",
	})
	require.NoError(t, err)
	assert.Equal(t, 60, out.XP)
	assert.Equal(t, "confidence", out.Category)
	assert.Equal(t, 1, out.CategoryLevel)
	assert.Contains(t, out.Message, "on fire")

	done, err := h.history.IsTaskCompleted(ctx, "mini-1")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 1, h.tx.calls)
}

func TestCompleteTaskRejectsShortNoteWithoutSideEffects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t, &fakeClock{now: time.Now()}, kv.NewMemoryStore(), t.TempDir())

	_, err := h.reward.CompleteTask(ctx, dto.CompleteTaskInput{TaskID: "r-1", ActivityType: "rejection", Note: "   too short   "})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = h.reward.CompleteTask(ctx, dto.CompleteTaskInput{TaskID: "r-1", ActivityType: "rejection", Difficulty: "epic", Note: "a perfectly long enough reflection"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	ledger, err := h.xp.GetLedger(ctx)
	require.NoError(t, err)
	assert.Zero(t, ledger.TotalXP)
	done, err := h.history.IsTaskCompleted(ctx, "r-1")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Zero(t, h.tx.calls)
}

func TestWriteJournalAwardsConfidence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t, &fakeClock{now: time.Now()}, kv.NewMemoryStore(), t.TempDir())

	_, err := h.reward.WriteJournal(ctx, dto.WriteJournalInput{Content: "short"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	out, err := h.reward.WriteJournal(ctx, dto.WriteJournalInput{Content: "Felt calmer after the walk.", Mood: "positive"})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Award.XP)
	assert.Equal(t, "confidence", out.Award.Category)
	assert.Equal(t, "positive", out.Entry.Mood)

	_, err = h.reward.WriteJournal(ctx, dto.WriteJournalInput{Content: "Continue writing about the walk."})
	require.NoError(t, err)
	tasks, err := h.history.ListTasks(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, tasks, 2, "each journal write appends its own history entry")
}

func TestAwardActivityCompletesSessionOnlyForFocus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t, &fakeClock{now: time.Now()}, kv.NewMemoryStore(), t.TempDir())

	breath, err := h.reward.AwardActivity(ctx, dto.ActivityInput{RunID: "run-1", ActivityType: "breathing", Difficulty: "medium"})
	require.NoError(t, err)
	assert.Equal(t, 12, breath.XP)
	stats, err := h.streak.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalSessions)

	focus, err := h.reward.AwardActivity(ctx, dto.ActivityInput{RunID: "run-2", ActivityType: "pomodoro", FocusMinutes: 25})
	require.NoError(t, err)
	assert.Equal(t, 15, focus.XP)
	stats, err = h.streak.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 25, stats.TotalFocusTime)
	assert.Equal(t, 1, stats.CurrentStreak)

	_, err = h.reward.AwardActivity(ctx, dto.ActivityInput{RunID: "run-3", ActivityType: "pomodoro", FocusMinutes: -1})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSummaryPerfectDayAndProgressNote(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)}
	dbPath := filepath.Join(t.TempDir(), "upmind.db")
	store, err := kv.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	h := newHarness(t, clk, store, t.TempDir())

	_, err = h.reward.CompleteTask(ctx, dto.CompleteTaskInput{TaskID: "int-1", ActivityType: "interview", Note: "Practised the STAR answers twice."})
	require.NoError(t, err)
	_, err = h.reward.WriteJournal(ctx, dto.WriteJournalInput{Content: "Proud of the mock interview."})
	require.NoError(t, err)
	_, err = h.reward.AwardActivity(ctx, dto.ActivityInput{RunID: "run-1", ActivityType: "pomodoro", FocusMinutes: 25})
	require.NoError(t, err)

	summary, err := h.reward.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01", summary.Date)
	assert.Equal(t, 3, summary.TasksToday)
	assert.Equal(t, 1, summary.SessionsToday)
	assert.True(t, summary.JournaledToday)
	assert.Equal(t, 1, summary.JournalStreak)
	assert.Equal(t, 50, summary.DailyBonus.BonusXP)
	assert.Zero(t, summary.StreakBonusXP)
	assert.Equal(t, 37+5+15, summary.Ledger.TotalXP)
	require.Len(t, summary.Achievements, 5)
	assert.True(t, summary.Achievements[0].Unlocked)

	reloaded := newHarness(t, clk, store, h.vault)
	again, err := reloaded.reward.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, summary.Ledger, again.Ledger)
	assert.Equal(t, summary.TasksToday, again.TasksToday)

	path, err := h.reward.WriteProgressNote(ctx)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append([]byte("# My notes\n\nkeep me\n\n"), mustRead(t, path)...), 0o644))
	_, err = h.reward.WriteProgressNote(ctx)
	require.NoError(t, err)
	content := string(mustRead(t, path))
	assert.Contains(t, content, "keep me")
	assert.Contains(t, content, markdown.BlockStart)
	assert.Contains(t, content, "Perfect Day")
	assert.Equal(t, 1, strings.Count(content, markdown.BlockStart))
}

func TestAwardsAndDirectXPInterleaveOnSQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC)}
	store, err := kv.NewSQLiteStore(filepath.Join(t.TempDir(), "upmind.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	h := newHarness(t, clk, store, t.TempDir())

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		awarded int
		errs    = make(chan error, 2*workers)
	)
	for n := 0; n < workers; n++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			out, err := h.reward.AwardActivity(ctx, dto.ActivityInput{RunID: "run-" + strconv.Itoa(n), ActivityType: "breathing", Difficulty: "medium"})
			if err != nil {
				errs <- err
				return
			}
			mu.Lock()
			awarded += out.XP
			mu.Unlock()
		}(n)
		go func() {
			defer wg.Done()
			if _, err := h.xp.AddXP(ctx, xpdto.AddXPInput{Category: "resilience", Amount: 5}); err != nil {
				errs <- err
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("awards and direct xp writes did not finish; writers are blocking each other")
	}
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	ledger, err := h.xp.GetLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, awarded+workers*5, ledger.TotalXP)

	reloaded, err := newHarness(t, clk, store, h.vault).xp.GetLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, ledger, reloaded, "the last committed snapshot holds every write")
}

func TestResetAllClearsEveryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t, &fakeClock{now: time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)}, kv.NewMemoryStore(), t.TempDir())

	_, err := h.reward.WriteJournal(ctx, dto.WriteJournalInput{Content: "Slept well, ready to go."})
	require.NoError(t, err)
	_, err = h.reward.AwardActivity(ctx, dto.ActivityInput{RunID: "run-1", ActivityType: "pomodoro", FocusMinutes: 25})
	require.NoError(t, err)
	calls := h.tx.calls

	require.NoError(t, h.reward.ResetAll(ctx))
	assert.Equal(t, calls+1, h.tx.calls)

	summary, err := h.reward.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.Ledger.TotalXP)
	assert.Zero(t, summary.Stats.TotalSessions)
	assert.Zero(t, summary.TasksToday)
	assert.False(t, summary.JournaledToday)
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return raw
}
