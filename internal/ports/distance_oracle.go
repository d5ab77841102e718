package ports

import "delivery-route-optimizer/internal/domain"

// Contract for the straight-line travel distance between two locations.
// Implementations must be pure and safe for concurrent use.
type DistanceOracle interface {
	// Return the travel distance between two locations.
	Distance(a, b domain.Location) float64
}
