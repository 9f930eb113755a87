package in

import (
	"context"
	"time"

	"upmind/internal/modules/phase/dto"
)

// Observer receives every advance made by Run, including the last one.
type Observer func(dto.AdvanceOutput)

type Usecase interface {
	ListTechniques(ctx context.Context) ([]dto.TechniqueOutput, error)
	Start(ctx context.Context, input dto.StartInput) (dto.RunOutput, error)
	Advance(ctx context.Context, elapsed time.Duration) (dto.AdvanceOutput, error)
	Stop(ctx context.Context) (dto.RunOutput, error)
	Status(ctx context.Context) (dto.RunOutput, error)
	Run(ctx context.Context, input dto.RunInput, observer Observer) (dto.AdvanceOutput, error)
}
