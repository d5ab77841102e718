package domain

import "time"

// Represents a single vehicle route expressed in real-world coordinates.
// Stops starts and ends at the depot; Deliveries keeps the delivery indices
// in visiting order.
type RouteCoordinates struct {
	Deliveries []int
	Stops      []Location
	Load       float64
	Distance   float64
}

// Represents the reported outcome of an optimization: the best chromosome
// found, expressed as depot-bounded coordinate sequences, and its length.
type Solution struct {
	Routes        []RouteCoordinates
	TotalDistance float64
	Fitness       float64
	Feasible      bool
}

// Represents one persisted optimizer run.
type Run struct {
	ID          string
	Instance    string
	Seed        int64
	Config      map[string]any
	Solution    Solution
	Generations int
	Evaluations int
	History     []float64
	Duration    time.Duration
	CreatedAt   time.Time
}
