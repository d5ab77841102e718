package ga

import (
	"delivery-route-optimizer/internal/domain"
	"math/rand"
)

// InitPopulation builds size chromosomes by randomized greedy bin packing.
//
// Each chromosome starts from a uniformly shuffled delivery order. Passes
// over the remaining deliveries fill the current vehicle with every delivery
// that still fits; after a full pass the route is closed and a new one begins.
// Routes never exceed capacity, except a delivery whose demand alone is larger
// than capacity, which gets a route of its own.
func InitPopulation(inst *domain.Instance, capacity float64, size int, rng *rand.Rand) []domain.Chromosome {
	pop := make([]domain.Chromosome, size)
	for i := range pop {
		pop[i] = randomChromosome(inst, capacity, rng)
	}
	return pop
}

func randomChromosome(inst *domain.Instance, capacity float64, rng *rand.Rand) domain.Chromosome {
	remaining := make([]int, inst.Size())
	initPermutation(remaining)
	shufflePermutation(remaining, rng)

	var routes domain.Chromosome
	for len(remaining) > 0 {
		v := domain.NewVehicle(capacity)
		rest := remaining[:0]
		for _, idx := range remaining {
			if !v.TryLoad(idx, inst.Demand(idx)) {
				rest = append(rest, idx)
			}
		}

		if v.Empty() {
			// Oversized delivery: nothing else can share its vehicle.
			v.ForceLoad(rest[0], inst.Demand(rest[0]))
			rest = rest[1:]
		}

		routes = append(routes, v.Stops)
		remaining = rest
	}
	return routes
}

// initPermutation fills p with 0..len(p)-1.
func initPermutation(p []int) {
	for i := range p {
		p[i] = i
	}
}

// shufflePermutation is a Fisher-Yates shuffle.
func shufflePermutation(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}
