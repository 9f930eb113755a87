package out

import (
	"context"

	"upmind/internal/modules/history/domain"
)

type HistoryStore interface {
	Load(ctx context.Context) (domain.History, bool, error)
	Save(ctx context.Context, history domain.History) error
}
