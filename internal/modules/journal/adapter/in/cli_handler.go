package in

import (
	"context"

	"upmind/internal/modules/journal/dto"
	journalin "upmind/internal/modules/journal/port/in"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// List returns entries for date when set, otherwise the newest limit entries.
func (h CLIHandler) List(ctx context.Context, date string, limit int) ([]dto.EntryOutput, error) {
	if date != "" {
		return h.usecase.EntriesForDate(ctx, date)
	}
	return h.usecase.ListEntries(ctx, limit)
}

func (h CLIHandler) Streak(ctx context.Context) (dto.StreakOutput, error) {
	return h.usecase.Streak(ctx)
}

func (h CLIHandler) Prompt(ctx context.Context) (string, error) {
	out, err := h.usecase.Streak(ctx)
	if err != nil {
		return "", err
	}
	return out.Prompt, nil
}

func (h CLIHandler) Export(ctx context.Context, entryID string) (string, error) {
	return h.usecase.ExportEntry(ctx, entryID)
}
