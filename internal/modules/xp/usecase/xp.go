package usecase

import (
	"context"

	"upmind/internal/modules/xp/domain"
	"upmind/internal/modules/xp/dto"
	xpin "upmind/internal/modules/xp/port/in"
	"upmind/internal/modules/xp/service"
)

type Interactor struct {
	svc *service.LedgerService
}

func NewInteractor(svc *service.LedgerService) xpin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) AddXP(ctx context.Context, input dto.AddXPInput) (dto.LedgerOutput, error) {
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return dto.LedgerOutput{}, err
	}
	ledger, err := i.svc.Add(ctx, category, input.Amount)
	if err != nil {
		return dto.LedgerOutput{}, err
	}
	return toOutput(ledger), nil
}

func (i *Interactor) GetLedger(_ context.Context) (dto.LedgerOutput, error) {
	return toOutput(i.svc.Snapshot()), nil
}

func (i *Interactor) Reset(ctx context.Context) (dto.LedgerOutput, error) {
	return toOutput(i.svc.Reset(ctx)), nil
}

func toOutput(l domain.Ledger) dto.LedgerOutput {
	out := dto.LedgerOutput{TotalXP: l.TotalXP, TotalFormatted: domain.FormatXP(l.TotalXP)}
	for _, c := range domain.Categories() {
		v := l.Get(c)
		out.Categories = append(out.Categories, dto.CategoryOutput{
			Category:    string(c),
			Current:     v.Current,
			Level:       v.Level,
			NextLevelAt: domain.XPForNextLevel(v.Current),
			Progress:    domain.LevelProgress(v.Current),
			Formatted:   domain.FormatXP(v.Current),
		})
	}
	return out
}
