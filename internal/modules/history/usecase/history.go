package usecase

import (
	"context"
	"fmt"
	"strings"

	"upmind/internal/modules/history/domain"
	"upmind/internal/modules/history/dto"
	historyin "upmind/internal/modules/history/port/in"
	"upmind/internal/modules/history/service"
	apperrors "upmind/internal/platform/errors"
)

type Interactor struct {
	svc *service.HistoryService
}

func NewInteractor(svc *service.HistoryService) historyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) CompleteTask(ctx context.Context, input dto.CompleteTaskInput) (dto.EntryOutput, error) {
	entry, err := i.svc.Complete(ctx, strings.TrimSpace(input.TaskID), input.XPEarned, input.ActivityType)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toOutput(entry), nil
}

func (i *Interactor) IsTaskCompleted(_ context.Context, taskID string) (bool, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return false, fmt.Errorf("%w: task id is required", apperrors.ErrInvalidInput)
	}
	return i.svc.IsCompleted(taskID), nil
}

func (i *Interactor) TasksCompletedToday(_ context.Context) (int, error) {
	return i.svc.CompletedToday(), nil
}

func (i *Interactor) ListTasks(_ context.Context, limit int) ([]dto.EntryOutput, error) {
	entries := i.svc.Recent(limit)
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, toOutput(e))
	}
	return out, nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	i.svc.Reset(ctx)
	return nil
}

func toOutput(e domain.Entry) dto.EntryOutput {
	return dto.EntryOutput{
		ID:           e.ID,
		CompletedAt:  e.CompletedAt,
		XPEarned:     e.XPEarned,
		ActivityType: e.ActivityType,
	}
}
