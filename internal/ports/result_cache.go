package ports

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"time"
)

// Contract for caching finished runs by a deterministic request key.
// A miss is reported as (nil, nil).
type ResultCache interface {
	Get(ctx context.Context, key string) (*domain.Run, error)
	Put(ctx context.Context, key string, run *domain.Run, ttl time.Duration) error
}
