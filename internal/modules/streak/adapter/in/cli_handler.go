package in

import (
	"context"

	"upmind/internal/modules/streak/dto"
	streakin "upmind/internal/modules/streak/port/in"
)

type CLIHandler struct {
	usecase streakin.Usecase
}

func NewCLIHandler(usecase streakin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Complete(ctx context.Context, minutes int) (dto.StatsOutput, error) {
	return h.usecase.CompleteSession(ctx, dto.CompleteSessionInput{Minutes: minutes})
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.GetStats(ctx)
}

func (h CLIHandler) ResetStreaks(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.ResetStreaks(ctx)
}
