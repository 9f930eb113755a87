package in

import (
	"context"

	"upmind/internal/modules/quiz/dto"
)

type Usecase interface {
	Generate(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error)
	Ping(ctx context.Context) ([]dto.ProviderStatusOutput, error)
}
