package out

import (
	"context"

	"upmind/internal/modules/journal/domain"
)

type JournalStore interface {
	Load(ctx context.Context) (domain.Journal, bool, error)
	Save(ctx context.Context, journal domain.Journal) error
}

// EntryExporter writes a single entry somewhere outside the snapshot store
// and returns where it went.
type EntryExporter interface {
	Export(ctx context.Context, entry domain.Entry) (string, error)
}
