package out

import "context"

// ProgressWriter publishes a rendered summary and returns where it landed.
type ProgressWriter interface {
	WriteProgress(ctx context.Context, markdown string) (string, error)
}
