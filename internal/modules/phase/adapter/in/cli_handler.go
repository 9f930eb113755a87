package in

import (
	"context"
	"time"

	"upmind/internal/modules/phase/dto"
	phasein "upmind/internal/modules/phase/port/in"
)

type CLIHandler struct {
	usecase phasein.Usecase
}

func NewCLIHandler(usecase phasein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.TechniqueOutput, error) {
	return h.usecase.ListTechniques(ctx)
}

func (h CLIHandler) Run(ctx context.Context, techniqueID string, interval time.Duration, observer phasein.Observer) (dto.AdvanceOutput, error) {
	return h.usecase.Run(ctx, dto.RunInput{TechniqueID: techniqueID, Interval: interval}, observer)
}

func (h CLIHandler) Status(ctx context.Context) (dto.RunOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (dto.RunOutput, error) {
	return h.usecase.Stop(ctx)
}
