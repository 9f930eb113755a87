package out

import (
	"context"

	"upmind/internal/modules/xp/domain"
)

type LedgerStore interface {
	Load(ctx context.Context) (domain.Ledger, bool, error)
	Save(ctx context.Context, ledger domain.Ledger) error
}
