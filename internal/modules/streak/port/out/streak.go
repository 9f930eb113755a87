package out

import (
	"context"

	"upmind/internal/modules/streak/domain"
)

type StatsStore interface {
	Load(ctx context.Context) (domain.Stats, bool, error)
	Save(ctx context.Context, stats domain.Stats) error
}
