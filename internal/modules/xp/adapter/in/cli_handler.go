package in

import (
	"context"

	"upmind/internal/modules/xp/dto"
	xpin "upmind/internal/modules/xp/port/in"
)

type CLIHandler struct {
	usecase xpin.Usecase
}

func NewCLIHandler(usecase xpin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, category string, amount int) (dto.LedgerOutput, error) {
	return h.usecase.AddXP(ctx, dto.AddXPInput{Category: category, Amount: amount})
}

func (h CLIHandler) Ledger(ctx context.Context) (dto.LedgerOutput, error) {
	return h.usecase.GetLedger(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (dto.LedgerOutput, error) {
	return h.usecase.Reset(ctx)
}
