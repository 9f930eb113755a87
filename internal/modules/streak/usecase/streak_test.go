package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	streakout "upmind/internal/modules/streak/adapter/out"
	"upmind/internal/modules/streak/dto"
	streakin "upmind/internal/modules/streak/port/in"
	"upmind/internal/modules/streak/service"
	"upmind/internal/modules/streak/usecase"
	apperrors "upmind/internal/platform/errors"
	"upmind/internal/platform/kv"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func newUsecase(clk *fakeClock, store kv.Store) streakin.Usecase {
	return usecase.NewInteractor(service.NewStatsService(context.Background(), clk, streakout.NewKVStatsStore(store), nil, nil))
}

func TestCompleteSessionAcrossDaysAndReload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)}
	store := kv.NewMemoryStore()
	uc := newUsecase(clk, store)

	_, err := uc.CompleteSession(ctx, dto.CompleteSessionInput{Minutes: 25})
	require.NoError(t, err)
	out, err := uc.CompleteSession(ctx, dto.CompleteSessionInput{Minutes: 25})
	require.NoError(t, err)
	assert.Equal(t, 1, out.CurrentStreak)
	assert.Equal(t, 2, out.SessionsToday)

	clk.now = clk.now.Add(24 * time.Hour)
	stale, err := uc.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stale.SessionsToday, "yesterday's count reads as zero today")

	out, err = uc.CompleteSession(ctx, dto.CompleteSessionInput{Minutes: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, out.CurrentStreak)
	assert.Equal(t, 60, out.TotalFocusTime)
	assert.Equal(t, "2026-02-26", out.LastSessionDate)

	reloaded, err := newUsecase(clk, store).GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, out, reloaded)
}

func TestResetStreaksAndFullReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)}
	uc := newUsecase(clk, kv.NewMemoryStore())

	_, err := uc.CompleteSession(ctx, dto.CompleteSessionInput{Minutes: 25})
	require.NoError(t, err)
	out, err := uc.ResetStreaks(ctx)
	require.NoError(t, err)
	assert.Zero(t, out.CurrentStreak)
	assert.Equal(t, 1, out.TotalSessions)

	out, err = uc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.StatsOutput{}, out)
}

func TestCompleteSessionValidatesMinutes(t *testing.T) {
	t.Parallel()
	uc := newUsecase(&fakeClock{now: time.Now().UTC()}, kv.NewMemoryStore())
	_, err := uc.CompleteSession(context.Background(), dto.CompleteSessionInput{Minutes: -5})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
