package ports

import "delivery-route-optimizer/internal/domain"

// Optional extension of DistanceOracle that supports batched lookups.
type BatchDistanceOracle interface {
	DistanceOracle
	// Return distances from one origin to many destinations, in destination order.
	DistancesFrom(origin domain.Location, destinations []domain.Location) []float64
}
