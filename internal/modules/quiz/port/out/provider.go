package out

import (
	"context"

	"upmind/internal/modules/quiz/domain"
)

// Provider generates questions for a request. Implementations may fail or
// return malformed sets; callers validate before use.
type Provider interface {
	Name() string
	Generate(ctx context.Context, request domain.Request) ([]domain.Question, error)
	Ping(ctx context.Context) error
}
