package main

import (
	"context"
	"delivery-route-optimizer/internal/adapters/distance"
	"delivery-route-optimizer/internal/adapters/repositories"
	"delivery-route-optimizer/internal/config"
	"delivery-route-optimizer/internal/ga"
	"delivery-route-optimizer/internal/services"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

// solve runs the optimizer once over an instance file and prints each route
// as depot-bounded coordinates followed by the total distance.
func main() {
	var (
		instancePath = flag.String("instance", "data/vrp_data.json", "instance JSON file")
		configPath   = flag.String("config", "", "GA parameters YAML file (defaults when empty)")
		seed         = flag.Int64("seed", 0, "random seed (0 = time based)")
		generations  = flag.Int("generations", 0, "override generation count")
		population   = flag.Int("population", 0, "override population size")
		capacity     = flag.Float64("capacity", 0, "override vehicle capacity")
		logEvery     = flag.Int("log_every", -1, "log progress every n generations (-1 = config value)")
	)
	flag.Parse()

	config.LoadEnv()

	cfg, err := config.LoadSolverConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg, err = config.ApplyEnv(cfg); err != nil {
		log.Fatal(err)
	}
	if *generations > 0 {
		cfg.Generations = *generations
	}
	if *population > 0 {
		cfg.Population = *population
	}
	if *capacity > 0 {
		cfg.VehicleCapacity = *capacity
	}
	if *logEvery >= 0 {
		cfg.LogEvery = *logEvery
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	inst, err := repositories.LoadInstanceJSON(*instancePath)
	if err != nil {
		log.Fatal(err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	solver, err := ga.NewSeeded(cfg, *seed)
	if err != nil {
		log.Fatal(err)
	}
	solver.Observer = services.ProgressPrinter(os.Stdout, cfg.LogEvery)

	oracle := distance.NewEuclidean()
	res, err := solver.Solve(ctx, inst, oracle)
	if err != nil {
		if ctx.Err() == nil || res.Best == nil {
			log.Fatal(err)
		}
		log.Printf("interrupted after %d generations, reporting best so far", res.Generations)
	}

	sol := services.BuildSolution(inst, res.Best, oracle)
	for _, r := range sol.Routes {
		stops := make([]string, 0, len(r.Stops))
		for _, s := range r.Stops {
			stops = append(stops, fmt.Sprintf("(%g, %g)", s.X, s.Y))
		}
		fmt.Printf("Route: [%s]\n", strings.Join(stops, ", "))
	}
	fmt.Printf("Total Distance: %.4f\n", sol.TotalDistance)

	if inst.NumVehicles > 0 && len(sol.Routes) > inst.NumVehicles {
		log.Printf("warning: %d routes exceed the %d declared vehicles", len(sol.Routes), inst.NumVehicles)
	}
	if !res.Feasible {
		log.Printf("warning: best solution breaches vehicle capacity %g", cfg.VehicleCapacity)
	}
	log.Printf("seed=%d generations=%d evaluations=%d dur=%dms", *seed, res.Generations, res.Evaluations, res.Duration.Milliseconds())
}
