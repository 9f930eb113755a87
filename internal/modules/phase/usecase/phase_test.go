package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	phaseout "upmind/internal/modules/phase/adapter/out"
	"upmind/internal/modules/phase/domain"
	"upmind/internal/modules/phase/dto"
	phasein "upmind/internal/modules/phase/port/in"
	"upmind/internal/modules/phase/service"
	"upmind/internal/modules/phase/usecase"
	apperrors "upmind/internal/platform/errors"
	"upmind/internal/platform/markdown"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeRewarder struct {
	mu       sync.Mutex
	requests []domain.AwardRequest
	err      error
}

func (f *fakeRewarder) Award(_ context.Context, request domain.AwardRequest) (domain.AwardResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.AwardResult{}, f.err
	}
	f.requests = append(f.requests, request)
	return domain.AwardResult{XP: 12, Category: "confidence", Message: "Great work! Every step counts!"}, nil
}

func (f *fakeRewarder) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

var quick = domain.Technique{
	ID:       "quick",
	Name:     "Quick Breath",
	Activity: "breathing",
	Cycles:   2,
	Phases: []domain.PhaseSpec{
		{Kind: domain.PhaseInhale, Duration: 20 * time.Millisecond},
		{Kind: domain.PhaseHold},
		{Kind: domain.PhaseExhale, Duration: 20 * time.Millisecond},
	},
}

func newUsecase(t *testing.T, vault string, rewarder *fakeRewarder) phasein.Usecase {
	t.Helper()
	catalog, err := domain.NewCatalog(quick)
	require.NoError(t, err)
	return usecase.NewInteractor(usecase.Dependencies{
		Service:  service.NewRunService(catalog),
		Active:   phaseout.NewFileActiveRunStore(filepath.Join(vault, ".upmind")),
		Notes:    phaseout.NewVaultNoteWriter(vault),
		Rewarder: rewarder,
		Clock:    fixedClock{now: time.Date(2026, 5, 2, 7, 30, 0, 0, time.UTC)},
	})
}

func TestAdvanceToCompletionRewardsOnceAndWritesNote(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	vault := t.TempDir()
	rewarder := &fakeRewarder{}
	uc := newUsecase(t, vault, rewarder)

	started, err := uc.Start(ctx, dto.StartInput{TechniqueID: "pomodoro"})
	require.NoError(t, err)
	assert.Equal(t, "breathing", started.Phase)
	_, err = os.Stat(filepath.Join(vault, ".upmind", "active-phase.json"))
	require.NoError(t, err)

	mid, err := uc.Advance(ctx, time.Minute)
	require.NoError(t, err)
	require.Len(t, mid.Events, 1)
	assert.Equal(t, "focus", mid.Events[0].Phase)
	assert.False(t, mid.Completed)

	done, err := uc.Advance(ctx, 25*time.Minute)
	require.NoError(t, err)
	require.True(t, done.Completed)
	require.NotNil(t, done.Award)
	assert.Equal(t, 12, done.Award.XP)

	require.Equal(t, 1, rewarder.calls())
	assert.Equal(t, domain.AwardRequest{RunID: started.RunID, Activity: "pomodoro", Difficulty: "medium", FocusMinutes: 25}, rewarder.requests[0])

	var meta map[string]any
	body, err := markdown.ReadNote(done.NotePath, &meta)
	require.NoError(t, err)
	assert.Equal(t, "pomodoro", meta["technique"])
	assert.Equal(t, started.RunID, meta["id"])
	assert.Contains(t, done.NotePath, filepath.Join("sessions", "2026", "05", "02"))
	assert.Contains(t, body, "Pomodoro Focus")

	_, err = uc.Status(ctx)
	require.ErrorIs(t, err, apperrors.ErrNoActiveSession)
	_, err = uc.Advance(ctx, time.Hour)
	require.ErrorIs(t, err, apperrors.ErrNoActiveSession)
	assert.Equal(t, 1, rewarder.calls())
}

func TestStopNeverRewards(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rewarder := &fakeRewarder{}
	uc := newUsecase(t, t.TempDir(), rewarder)

	_, err := uc.Start(ctx, dto.StartInput{TechniqueID: "box"})
	require.NoError(t, err)
	_, err = uc.Advance(ctx, 20*time.Second)
	require.NoError(t, err)

	stopped, err := uc.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "box", stopped.TechniqueID)
	assert.Equal(t, "idle", stopped.Status)

	_, err = uc.Advance(ctx, time.Hour)
	require.ErrorIs(t, err, apperrors.ErrNoActiveSession)
	_, err = uc.Stop(ctx)
	require.ErrorIs(t, err, apperrors.ErrNoActiveSession)
	assert.Zero(t, rewarder.calls())
}

func TestOnlyOneActiveRunPerVault(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	vault := t.TempDir()
	first := newUsecase(t, vault, &fakeRewarder{})
	other := newUsecase(t, vault, &fakeRewarder{})

	_, err := first.Start(ctx, dto.StartInput{TechniqueID: "478"})
	require.NoError(t, err)
	_, err = first.Start(ctx, dto.StartInput{TechniqueID: "box"})
	require.ErrorIs(t, err, apperrors.ErrActiveSessionExists)
	_, err = other.Start(ctx, dto.StartInput{TechniqueID: "box"})
	require.ErrorIs(t, err, apperrors.ErrActiveSessionExists)

	status, err := other.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Detached)
	assert.Equal(t, "478", status.TechniqueID)

	_, err = first.Start(ctx, dto.StartInput{TechniqueID: "missing"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStopFromAnotherProcessIsHonoured(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	vault := t.TempDir()
	rewarder := &fakeRewarder{}
	runner := newUsecase(t, vault, rewarder)
	cli := newUsecase(t, vault, &fakeRewarder{})

	_, err := runner.Start(ctx, dto.StartInput{TechniqueID: "energy"})
	require.NoError(t, err)
	_, err = cli.Stop(ctx)
	require.NoError(t, err)

	out, err := runner.Advance(ctx, time.Hour)
	require.NoError(t, err)
	assert.True(t, out.Stopped)
	assert.False(t, out.Completed)
	assert.Zero(t, rewarder.calls())
}

func TestRewardFailureClearsRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(t, t.TempDir(), &fakeRewarder{err: errors.New("ledger offline")})

	_, err := uc.Start(ctx, dto.StartInput{TechniqueID: "energy"})
	require.NoError(t, err)
	_, err = uc.Advance(ctx, time.Hour)
	require.Error(t, err)
	_, err = uc.Status(ctx)
	require.ErrorIs(t, err, apperrors.ErrNoActiveSession)
}

func TestRunDrivesToCompletion(t *testing.T) {
	t.Parallel()
	rewarder := &fakeRewarder{}
	uc := newUsecase(t, t.TempDir(), rewarder)

	var (
		mu     sync.Mutex
		phases []string
	)
	out, err := uc.Run(context.Background(), dto.RunInput{TechniqueID: "quick", Interval: 5 * time.Millisecond}, func(a dto.AdvanceOutput) {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range a.Events {
			phases = append(phases, e.Phase)
		}
	})
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.Equal(t, 1, rewarder.calls())

	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, phases, "hold")
	assert.Contains(t, phases, "exhale")
}

func TestRunCancellationStopsWithoutReward(t *testing.T) {
	t.Parallel()
	rewarder := &fakeRewarder{}
	uc := newUsecase(t, t.TempDir(), rewarder)
	ctx, cancel := context.WithCancel(context.Background())

	ticks := make(chan struct{}, 1)
	result := make(chan dto.AdvanceOutput, 1)
	go func() {
		out, err := uc.Run(ctx, dto.RunInput{TechniqueID: "pomodoro", Interval: time.Millisecond}, func(a dto.AdvanceOutput) {
			if a.Run.Status == "running" {
				select {
				case ticks <- struct{}{}:
				default:
				}
			}
		})
		assert.NoError(t, err)
		result <- out
	}()
	<-ticks
	cancel()

	select {
	case out := <-result:
		assert.True(t, out.Stopped)
		assert.False(t, out.Completed)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancellation")
	}
	assert.Zero(t, rewarder.calls())
	_, err := uc.Status(context.Background())
	require.ErrorIs(t, err, apperrors.ErrNoActiveSession)
}

func TestInProcessStopEndsRun(t *testing.T) {
	t.Parallel()
	rewarder := &fakeRewarder{}
	uc := newUsecase(t, t.TempDir(), rewarder)

	started := make(chan struct{})
	var once sync.Once
	result := make(chan dto.AdvanceOutput, 1)
	go func() {
		out, err := uc.Run(context.Background(), dto.RunInput{TechniqueID: "box", Interval: time.Millisecond}, func(dto.AdvanceOutput) {
			once.Do(func() { close(started) })
		})
		assert.NoError(t, err)
		result <- out
	}()
	<-started
	_, err := uc.Stop(context.Background())
	require.NoError(t, err)

	select {
	case out := <-result:
		assert.True(t, out.Stopped)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not notice the stop")
	}
	assert.Zero(t, rewarder.calls())
}
