package in

import (
	"context"

	"upmind/internal/modules/history/dto"
	historyin "upmind/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Check(ctx context.Context, taskID string) (bool, error) {
	return h.usecase.IsTaskCompleted(ctx, taskID)
}

func (h CLIHandler) List(ctx context.Context, limit int) ([]dto.EntryOutput, error) {
	return h.usecase.ListTasks(ctx, limit)
}

func (h CLIHandler) Today(ctx context.Context) (int, error) {
	return h.usecase.TasksCompletedToday(ctx)
}
