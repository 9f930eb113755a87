package in

import (
	"context"

	"upmind/internal/modules/quiz/dto"
	quizin "upmind/internal/modules/quiz/port/in"
)

type CLIHandler struct {
	usecase quizin.Usecase
}

func NewCLIHandler(usecase quizin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Generate(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error) {
	return h.usecase.Generate(ctx, input)
}

func (h CLIHandler) Ping(ctx context.Context) ([]dto.ProviderStatusOutput, error) {
	return h.usecase.Ping(ctx)
}
