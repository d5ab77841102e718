package ports

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Port: a boundary for retrieving problem instances from a data source.
type InstanceRepository interface {
	// Retrieve one instance by name. Returns ErrNotFound when absent.
	GetInstance(ctx context.Context, name string) (*domain.Instance, error)
	// List the names of all stored instances.
	ListInstances(ctx context.Context) ([]string, error)
	// Insert or replace an instance.
	SaveInstance(ctx context.Context, inst *domain.Instance) error
}
