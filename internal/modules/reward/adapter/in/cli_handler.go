package in

import (
	"context"

	"upmind/internal/modules/reward/dto"
	rewardin "upmind/internal/modules/reward/port/in"
)

type CLIHandler struct {
	usecase rewardin.Usecase
}

func NewCLIHandler(usecase rewardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) CompleteTask(ctx context.Context, taskID, activity, difficulty, note string) (dto.AwardOutput, error) {
	return h.usecase.CompleteTask(ctx, dto.CompleteTaskInput{
		TaskID:       taskID,
		ActivityType: activity,
		Difficulty:   difficulty,
		Note:         note,
	})
}

func (h CLIHandler) WriteJournal(ctx context.Context, content, mood string, tags []string) (dto.JournalAwardOutput, error) {
	return h.usecase.WriteJournal(ctx, dto.WriteJournalInput{Content: content, Mood: mood, Tags: tags})
}

func (h CLIHandler) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) WriteProgress(ctx context.Context) (string, error) {
	return h.usecase.WriteProgressNote(ctx)
}

func (h CLIHandler) ResetAll(ctx context.Context) error {
	return h.usecase.ResetAll(ctx)
}
