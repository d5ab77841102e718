package ga

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"
)

// Solver is a generational genetic algorithm for the CVRP.
//
// All randomness comes from Rng, so a run is reproducible for a fixed seed
// and config. Fitness evaluation may run in parallel; it consumes no
// randomness and therefore does not affect reproducibility.
type Solver struct {
	Cfg      Config
	Rng      *rand.Rand
	Observer Observer
}

// New returns a solver with a validated config and an initialized generator.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("new solver: random generator is nil")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// NewSeeded is New with a generator seeded from seed.
func NewSeeded(cfg Config, seed int64) (*Solver, error) {
	return New(cfg, rand.New(rand.NewSource(seed)))
}

// Solve runs Cfg.Generations generations over inst and returns the best
// chromosome seen. The instance is assumed valid; it is not checked here.
//
// ctx is checked once per generation. On cancellation Solve returns the best
// chromosome found so far together with ctx.Err().
func (s *Solver) Solve(ctx context.Context, inst *domain.Instance, oracle ports.DistanceOracle) (Result, error) {
	start := time.Now()

	if err := s.Cfg.Validate(); err != nil {
		return Result{}, err
	}
	if s.Rng == nil {
		return Result{}, errors.New("solve: random generator is nil")
	}
	if oracle == nil {
		return Result{}, errors.New("solve: distance oracle is nil")
	}

	eval := NewEvaluator(inst, oracle, s.Cfg)

	popSize := s.Cfg.Population
	eliteCount := s.Cfg.EliteCount()

	pop := InitPopulation(inst, s.Cfg.VehicleCapacity, popSize, s.Rng)
	next := make([]domain.Chromosome, 0, popSize)
	scores := make([]float64, popSize)

	var best domain.Chromosome
	bestFitness := math.Inf(1)
	history := make([]float64, 0, s.Cfg.Generations)
	evaluations := 0

	// Membership table for order crossover.
	mark := make([]int, inst.Size())
	stamp := 0

	idxs := make([]int, popSize)

	finish := func(gens int) Result {
		res := Result{
			Best:        best.Clone(),
			BestFitness: bestFitness,
			Generations: gens,
			Evaluations: evaluations,
			History:     history,
			Duration:    time.Since(start),
		}
		if best != nil {
			res.Distance = eval.Distance(best)
			res.Feasible = eval.Feasible(best)
		}
		return res
	}

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return finish(gen), err
		}

		if err := eval.EvaluatePopulation(ctx, pop, scores, s.Cfg.Workers); err != nil {
			return finish(gen), fmt.Errorf("solve: evaluate generation %d: %w", gen, err)
		}
		evaluations += popSize

		for i := range idxs {
			idxs[i] = i
		}
		sort.SliceStable(idxs, func(i, j int) bool {
			return scores[idxs[i]] < scores[idxs[j]]
		})

		// Best of the evaluated population, before it is replaced.
		genBest := idxs[0]
		improved := false
		if scores[genBest] < bestFitness {
			bestFitness = scores[genBest]
			best = pop[genBest].Clone()
			improved = true
		}
		history = append(history, bestFitness)

		if s.Observer != nil {
			s.Observer.OnGeneration(GenerationStats{
				Generation:     gen,
				Generations:    s.Cfg.Generations,
				BestFitness:    bestFitness,
				GenerationBest: scores[genBest],
				MeanFitness:    mean(scores),
				Improved:       improved,
			})
		}

		// Elitism: independent copies, so later in-place mutation of any
		// chromosome cannot reach back into history.
		next = next[:0]
		for e := 0; e < eliteCount; e++ {
			next = append(next, pop[idxs[e]].Clone())
		}

		for len(next) < popSize {
			p1 := tournamentSelect(scores, s.Cfg.TournamentSize, s.Rng)
			p2 := tournamentSelect(scores, s.Cfg.TournamentSize, s.Rng)

			var child domain.Chromosome
			if s.Rng.Float64() < s.Cfg.CrossoverRate {
				child = s.crossover(pop[p1], pop[p2], inst, mark, &stamp)
			} else {
				child = pop[p1].Clone()
			}

			mutateSwap(child, s.Cfg.MutationRate, s.Rng)
			next = append(next, child)
		}

		pop, next = next, pop
	}

	return finish(s.Cfg.Generations), nil
}

func (s *Solver) crossover(a, b domain.Chromosome, inst *domain.Instance, mark []int, stamp *int) domain.Chromosome {
	switch s.Cfg.CrossoverMode {
	case CrossoverSlot:
		return repair(slotCrossover(a, b, s.Rng), inst)
	default:
		return orderCrossover(a, b, s.Rng, mark, stamp)
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
