package out

import (
	"context"

	"upmind/internal/modules/phase/domain"
)

type ActiveRunStore interface {
	SaveActive(ctx context.Context, run domain.ActiveRun) error
	LoadActive(ctx context.Context) (domain.ActiveRun, error)
	ClearActive(ctx context.Context) error
}

type RunNoteWriter interface {
	WriteRun(ctx context.Context, record domain.RunRecord) (string, error)
}

// Rewarder turns a completed run into XP.
type Rewarder interface {
	Award(ctx context.Context, request domain.AwardRequest) (domain.AwardResult, error)
}
