package in

import (
	"context"

	"upmind/internal/modules/reward/dto"
)

type Usecase interface {
	CompleteTask(ctx context.Context, input dto.CompleteTaskInput) (dto.AwardOutput, error)
	WriteJournal(ctx context.Context, input dto.WriteJournalInput) (dto.JournalAwardOutput, error)
	AwardActivity(ctx context.Context, input dto.ActivityInput) (dto.AwardOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	WriteProgressNote(ctx context.Context) (string, error)
	ResetAll(ctx context.Context) error
}
