package domain

import "math"

// Immutable planar coordinates of the depot or a delivery.
type Location struct {
	X float64
	Y float64
}

// Straight-line distance between two locations.
func (l Location) DistanceTo(other Location) float64 {
	return math.Hypot(l.X-other.X, l.Y-other.Y)
}

// Return coordinates as [x, y] for JSON and storage compatibility.
func (l Location) ToList() []float64 { return []float64{l.X, l.Y} }

func (l Location) valid() bool {
	return !math.IsNaN(l.X) && !math.IsNaN(l.Y) && !math.IsInf(l.X, 0) && !math.IsInf(l.Y, 0)
}
