package ga

import (
	"context"
	"delivery-route-optimizer/internal/adapters/distance"
	"delivery-route-optimizer/internal/domain"
	"math"
	"math/rand"
	"testing"
)

func scenarioInstance() *domain.Instance {
	return &domain.Instance{
		Name:        "scenario",
		Depot:       domain.Location{X: 0, Y: 0},
		Deliveries:  []domain.Location{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 10, Y: 10}},
		Demands:     []float64{5, 5, 5},
		NumVehicles: 1,
	}
}

func scenarioConfig() Config {
	cfg := DefaultConfig()
	cfg.VehicleCapacity = 10
	return cfg
}

func TestFitnessDistanceOnly(t *testing.T) {
	inst := scenarioInstance()
	eval := NewEvaluator(inst, distance.NewEuclidean(), scenarioConfig())

	c := domain.Chromosome{{0, 1}, {2}}
	want := 1 + 1 + 2 + 2*math.Sqrt(200)

	if got := eval.Fitness(c); math.Abs(got-want) > 1e-9 {
		t.Fatalf("fitness = %v, want %v", got, want)
	}
	if got := eval.Distance(c); math.Abs(got-want) > 1e-9 {
		t.Fatalf("distance = %v, want %v", got, want)
	}
	if !eval.Feasible(c) {
		t.Fatalf("expected feasible chromosome")
	}
	if got := eval.RouteFitness(domain.Route{}); got != 0 {
		t.Fatalf("empty route fitness = %v, want 0", got)
	}
}

func TestFitnessPenaltyOnCapacityBreach(t *testing.T) {
	cfg := scenarioConfig()
	route := domain.Route{0, 1}

	ok := scenarioInstance()
	breached := scenarioInstance()
	breached.Demands[1] = 6

	okFit := NewEvaluator(ok, distance.NewEuclidean(), cfg).RouteFitness(route)
	badEval := NewEvaluator(breached, distance.NewEuclidean(), cfg)
	badFit := badEval.RouteFitness(route)

	if badFit-okFit < cfg.CapacityPenalty {
		t.Fatalf("breach adds %v, want at least %v", badFit-okFit, cfg.CapacityPenalty)
	}
	if badEval.Feasible(domain.Chromosome{route}) {
		t.Fatalf("expected breached route to be infeasible")
	}
	if got := badEval.Distance(domain.Chromosome{route}); math.Abs(got-4) > 1e-9 {
		t.Fatalf("distance without penalty = %v, want 4", got)
	}
}

func TestFitnessPenaltyPerOffendingDelivery(t *testing.T) {
	cfg := scenarioConfig()
	cfg.VehicleCapacity = 5
	eval := NewEvaluator(scenarioInstance(), distance.NewEuclidean(), cfg)

	// Load 5, 10, 15: the second and third deliveries each push past capacity.
	route := domain.Route{0, 1, 2}
	_, dist := eval.route(route)
	got := eval.RouteFitness(route) - dist
	if math.Abs(got-2*cfg.CapacityPenalty) > 1e-6 {
		t.Fatalf("penalty = %v, want %v", got, 2*cfg.CapacityPenalty)
	}
}

func TestFitnessProportionalPenalty(t *testing.T) {
	cfg := scenarioConfig()
	cfg.VehicleCapacity = 7
	cfg.CapacityPenalty = 100
	cfg.PenaltyMode = PenaltyProportional
	eval := NewEvaluator(scenarioInstance(), distance.NewEuclidean(), cfg)

	// Load 5, 10, 15 against capacity 7: overage 3 then 5 more.
	route := domain.Route{0, 1, 2}
	_, dist := eval.route(route)
	got := eval.RouteFitness(route) - dist
	if math.Abs(got-800) > 1e-9 {
		t.Fatalf("penalty = %v, want 800", got)
	}
}

func TestEvaluatorUsesPlainOracle(t *testing.T) {
	inst := &domain.Instance{
		Depot:      domain.Location{X: 0, Y: 0},
		Deliveries: []domain.Location{{X: 1, Y: 1}, {X: 2, Y: 2}},
		Demands:    []float64{1, 1},
	}
	oracle := distance.NewMockOracle([]distance.MockPair{
		{From: inst.Depot, To: inst.Deliveries[0], Distance: 3},
		{From: inst.Depot, To: inst.Deliveries[1], Distance: 4},
		{From: inst.Deliveries[0], To: inst.Deliveries[1], Distance: 10},
	})

	eval := NewEvaluator(inst, oracle, scenarioConfig())
	calls := oracle.Calls()

	if got := eval.Fitness(domain.Chromosome{{0, 1}}); got != 17 {
		t.Fatalf("fitness = %v, want 17", got)
	}
	if oracle.Calls() != calls {
		t.Fatalf("fitness queried the oracle after construction")
	}
}

func TestEvaluatePopulationParallelMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	inst := randomInstance(30, rng)
	eval := NewEvaluator(inst, distance.NewEuclidean(), scenarioConfig())
	pop := InitPopulation(inst, 10, 101, rng)

	serial := make([]float64, len(pop))
	parallel := make([]float64, len(pop))
	if err := eval.EvaluatePopulation(context.Background(), pop, serial, 1); err != nil {
		t.Fatalf("serial: %v", err)
	}
	if err := eval.EvaluatePopulation(context.Background(), pop, parallel, 8); err != nil {
		t.Fatalf("parallel: %v", err)
	}

	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("score %d: serial %v, parallel %v", i, serial[i], parallel[i])
		}
	}
}
