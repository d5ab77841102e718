package ports

import (
	"context"
	"delivery-route-optimizer/internal/domain"
)

// Port: persistence of completed optimizer runs.
type RunRepository interface {
	SaveRun(ctx context.Context, run *domain.Run) error
	// Returns ErrNotFound when no run has the given id.
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	// Most recent runs first; an empty instance lists runs of every instance.
	ListRuns(ctx context.Context, instance string, limit int) ([]*domain.Run, error)
}
