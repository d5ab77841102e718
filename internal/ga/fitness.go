package ga

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"math"

	"golang.org/x/sync/errgroup"
)

// Evaluator scores chromosomes against one instance.
//
// Distances between the depot and all deliveries are looked up once at
// construction; afterwards the evaluator is read-only and Fitness may be
// called from many goroutines.
type Evaluator struct {
	inst     *domain.Instance
	capacity float64
	penalty  float64
	mode     PenaltyMode
	// dist is an (n+1)x(n+1) row-major table; row/column 0 is the depot,
	// i+1 is delivery i.
	dist []float64
	n    int
}

func NewEvaluator(inst *domain.Instance, oracle ports.DistanceOracle, cfg Config) *Evaluator {
	n := inst.Size()
	points := make([]domain.Location, 0, n+1)
	points = append(points, inst.Depot)
	points = append(points, inst.Deliveries...)

	stride := n + 1
	dist := make([]float64, stride*stride)

	// Prefer batched lookups when the oracle supports them.
	batch, hasBatch := oracle.(ports.BatchDistanceOracle)
	for i, from := range points {
		row := dist[i*stride : (i+1)*stride]
		if hasBatch {
			copy(row, batch.DistancesFrom(from, points))
			continue
		}
		for j, to := range points {
			row[j] = oracle.Distance(from, to)
		}
	}

	return &Evaluator{
		inst:     inst,
		capacity: cfg.VehicleCapacity,
		penalty:  cfg.CapacityPenalty,
		mode:     cfg.PenaltyMode,
		dist:     dist,
		n:        n,
	}
}

func (e *Evaluator) between(from, to int) float64 {
	return e.dist[from*(e.n+1)+to]
}

// RouteFitness walks depot -> deliveries -> depot and adds the capacity
// penalty whenever the running load exceeds capacity.
func (e *Evaluator) RouteFitness(r domain.Route) float64 {
	total, _ := e.route(r)
	return total
}

// route returns (distance + penalty, distance).
func (e *Evaluator) route(r domain.Route) (float64, float64) {
	distance := 0.0
	penalty := 0.0
	load := 0.0
	prev := 0
	for _, idx := range r {
		node := idx + 1
		distance += e.between(prev, node)

		demand := e.inst.Demands[idx]
		load += demand
		if load > e.capacity {
			switch e.mode {
			case PenaltyProportional:
				penalty += e.penalty * math.Min(demand, load-e.capacity)
			default:
				penalty += e.penalty
			}
		}
		prev = node
	}
	distance += e.between(prev, 0)
	return distance + penalty, distance
}

// Fitness is the total travel distance plus capacity penalties. Lower is better.
func (e *Evaluator) Fitness(c domain.Chromosome) float64 {
	total := 0.0
	for _, r := range c {
		total += e.RouteFitness(r)
	}
	return total
}

// Distance is the penalty-free travel distance of c.
func (e *Evaluator) Distance(c domain.Chromosome) float64 {
	total := 0.0
	for _, r := range c {
		_, d := e.route(r)
		total += d
	}
	return total
}

// Feasible reports whether every route of c respects the vehicle capacity.
func (e *Evaluator) Feasible(c domain.Chromosome) bool {
	for _, r := range c {
		if r.Load(e.inst) > e.capacity {
			return false
		}
	}
	return true
}

// EvaluatePopulation fills scores[i] with the fitness of pop[i] using up to
// workers goroutines. Each goroutine writes only its own slots.
func (e *Evaluator) EvaluatePopulation(ctx context.Context, pop []domain.Chromosome, scores []float64, workers int) error {
	if workers <= 1 {
		for i, c := range pop {
			scores[i] = e.Fitness(c)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (len(pop) + workers - 1) / workers
	for start := 0; start < len(pop); start += chunk {
		end := min(start+chunk, len(pop))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				scores[i] = e.Fitness(pop[i])
			}
			return nil
		})
	}
	return g.Wait()
}
