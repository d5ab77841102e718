package domain

import (
	"errors"
	"fmt"
	"math"
)

// Represents a single CVRP problem instance.
// An Instance is loaded once and never mutated: every optimizer component
// reads it concurrently. Deliveries are identified by their index 0..N-1,
// and Demands is parallel to Deliveries.
type Instance struct {
	Name        string
	Depot       Location
	Deliveries  []Location
	Demands     []float64
	NumVehicles int
}

// Validate rejects malformed instance data before it reaches the optimizer.
func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("validate instance: instance is nil")
	}

	if len(inst.Deliveries) == 0 {
		return fmt.Errorf("validate instance %q: deliveries must not be empty", inst.Name)
	}

	if len(inst.Demands) != len(inst.Deliveries) {
		return fmt.Errorf(
			"validate instance %q: demands length must match deliveries (deliveries=%d demands=%d)",
			inst.Name, len(inst.Deliveries), len(inst.Demands),
		)
	}

	if !inst.Depot.valid() {
		return fmt.Errorf("validate instance %q: depot coordinates must be finite", inst.Name)
	}

	for i, loc := range inst.Deliveries {
		if !loc.valid() {
			return fmt.Errorf("validate instance %q: delivery %d coordinates must be finite", inst.Name, i)
		}
	}

	for i, d := range inst.Demands {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("validate instance %q: demand %d must be a non-negative number (got %v)", inst.Name, i, d)
		}
	}

	if inst.NumVehicles < 0 {
		return fmt.Errorf("validate instance %q: num_vehicles must be >= 0 (got %d)", inst.Name, inst.NumVehicles)
	}

	return nil
}

// Size returns the number of deliveries.
func (inst *Instance) Size() int { return len(inst.Deliveries) }

func (inst *Instance) Demand(i int) float64 { return inst.Demands[i] }

func (inst *Instance) TotalDemand() float64 {
	total := 0.0
	for _, d := range inst.Demands {
		total += d
	}
	return total
}
