package in

import (
	"context"

	"upmind/internal/modules/xp/dto"
)

type Usecase interface {
	AddXP(ctx context.Context, input dto.AddXPInput) (dto.LedgerOutput, error)
	GetLedger(ctx context.Context) (dto.LedgerOutput, error)
	Reset(ctx context.Context) (dto.LedgerOutput, error)
}
