package in

import (
	"context"

	"upmind/internal/modules/journal/dto"
)

type Usecase interface {
	AddEntry(ctx context.Context, input dto.AddEntryInput) (dto.EntryOutput, error)
	ListEntries(ctx context.Context, limit int) ([]dto.EntryOutput, error)
	EntriesForDate(ctx context.Context, date string) ([]dto.EntryOutput, error)
	Streak(ctx context.Context) (dto.StreakOutput, error)
	Prompts(ctx context.Context) ([]string, error)
	ExportEntry(ctx context.Context, entryID string) (string, error)
	Reset(ctx context.Context) error
}
