package in

import (
	"context"

	"upmind/internal/modules/streak/dto"
)

type Usecase interface {
	CompleteSession(ctx context.Context, input dto.CompleteSessionInput) (dto.StatsOutput, error)
	GetStats(ctx context.Context) (dto.StatsOutput, error)
	ResetStreaks(ctx context.Context) (dto.StatsOutput, error)
	Reset(ctx context.Context) (dto.StatsOutput, error)
}
