package in

import (
	"context"

	"upmind/internal/modules/history/dto"
)

type Usecase interface {
	CompleteTask(ctx context.Context, input dto.CompleteTaskInput) (dto.EntryOutput, error)
	IsTaskCompleted(ctx context.Context, taskID string) (bool, error)
	TasksCompletedToday(ctx context.Context) (int, error)
	ListTasks(ctx context.Context, limit int) ([]dto.EntryOutput, error)
	Reset(ctx context.Context) error
}
