package services

import (
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
)

// BuildSolution expresses chromosome c as depot-bounded coordinate routes.
// Empty routes are left out of the report. Fitness and Feasible are left for
// the caller, which knows the vehicle capacity and penalty in use.
func BuildSolution(inst *domain.Instance, c domain.Chromosome, oracle ports.DistanceOracle) domain.Solution {
	sol := domain.Solution{Routes: make([]domain.RouteCoordinates, 0, len(c))}

	for _, r := range c {
		if len(r) == 0 {
			continue
		}

		rc := domain.RouteCoordinates{
			Deliveries: append([]int(nil), r...),
			Stops:      make([]domain.Location, 0, len(r)+2),
			Load:       r.Load(inst),
		}

		prev := inst.Depot
		rc.Stops = append(rc.Stops, prev)
		for _, idx := range r {
			loc := inst.Deliveries[idx]
			rc.Distance += oracle.Distance(prev, loc)
			rc.Stops = append(rc.Stops, loc)
			prev = loc
		}
		rc.Distance += oracle.Distance(prev, inst.Depot)
		rc.Stops = append(rc.Stops, inst.Depot)

		sol.TotalDistance += rc.Distance
		sol.Routes = append(sol.Routes, rc)
	}

	return sol
}
