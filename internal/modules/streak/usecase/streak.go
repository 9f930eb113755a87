package usecase

import (
	"context"

	"upmind/internal/modules/streak/domain"
	"upmind/internal/modules/streak/dto"
	streakin "upmind/internal/modules/streak/port/in"
	"upmind/internal/modules/streak/service"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) streakin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) CompleteSession(ctx context.Context, input dto.CompleteSessionInput) (dto.StatsOutput, error) {
	if _, err := i.svc.CompleteSession(ctx, input.Minutes); err != nil {
		return dto.StatsOutput{}, err
	}
	return i.output(), nil
}

func (i *Interactor) GetStats(_ context.Context) (dto.StatsOutput, error) {
	return i.output(), nil
}

func (i *Interactor) ResetStreaks(ctx context.Context) (dto.StatsOutput, error) {
	i.svc.ResetStreaks(ctx)
	return i.output(), nil
}

func (i *Interactor) Reset(ctx context.Context) (dto.StatsOutput, error) {
	i.svc.Reset(ctx)
	return i.output(), nil
}

func (i *Interactor) output() dto.StatsOutput {
	return toOutput(i.svc.Snapshot(), i.svc.TodaySessionCount())
}

func toOutput(s domain.Stats, today int) dto.StatsOutput {
	return dto.StatsOutput{
		CurrentStreak:   s.CurrentStreak,
		LongestStreak:   s.LongestStreak,
		TotalSessions:   s.TotalSessions,
		TotalFocusTime:  s.TotalFocusTime,
		LastSessionDate: s.LastSessionDate,
		SessionsToday:   today,
	}
}
