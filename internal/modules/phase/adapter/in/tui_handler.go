package in

import (
	"context"
	"time"

	"upmind/internal/modules/phase/dto"
	phasein "upmind/internal/modules/phase/port/in"
)

// TUIHandler exposes step-wise control so the terminal UI can drive the
// machine from its own tick messages.
type TUIHandler struct {
	usecase phasein.Usecase
}

func NewTUIHandler(usecase phasein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Techniques(ctx context.Context) ([]dto.TechniqueOutput, error) {
	return h.usecase.ListTechniques(ctx)
}

func (h TUIHandler) Start(ctx context.Context, techniqueID string) (dto.RunOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{TechniqueID: techniqueID})
}

func (h TUIHandler) Advance(ctx context.Context, elapsed time.Duration) (dto.AdvanceOutput, error) {
	return h.usecase.Advance(ctx, elapsed)
}

func (h TUIHandler) Stop(ctx context.Context) (dto.RunOutput, error) {
	return h.usecase.Stop(ctx)
}
