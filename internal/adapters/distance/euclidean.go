package distance

import "delivery-route-optimizer/internal/domain"

// Euclidean implements DistanceOracle and BatchDistanceOracle with
// straight-line distances. It holds no state and is safe for concurrent use.
type Euclidean struct{}

func NewEuclidean() Euclidean { return Euclidean{} }

func (Euclidean) Distance(a, b domain.Location) float64 {
	return a.DistanceTo(b)
}

// Compute distances from a single origin to many destinations.
func (e Euclidean) DistancesFrom(origin domain.Location, destinations []domain.Location) []float64 {
	out := make([]float64, len(destinations))
	for i, d := range destinations {
		out[i] = origin.DistanceTo(d)
	}
	return out
}
