package api

import (
	"context"
	"delivery-route-optimizer/internal/api/handlers"
	"delivery-route-optimizer/internal/ga"
	"delivery-route-optimizer/internal/metrics"
	"delivery-route-optimizer/internal/ports"
	"delivery-route-optimizer/internal/services"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Defaults     ga.Config
	SolveTimeout time.Duration
	// Caps on population and generations accepted by /solve; zero uses the handler defaults.
	MaxPopulation  int
	MaxGenerations int
	// Ping checks storage for /health; nil reports liveness only.
	Ping func(ctx context.Context) error
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.SolveService, instances ports.InstanceRepository, opts Options) http.Handler {
	mux := http.NewServeMux()

	instanceHandler := &handlers.InstanceHandler{Repo: instances}
	solveHandler := &handlers.SolveHandler{
		Service:  svc,
		Defaults: opts.Defaults,
		Timeout:  opts.SolveTimeout,

		MaxPopulation:  opts.MaxPopulation,
		MaxGenerations: opts.MaxGenerations,
	}
	runHandler := &handlers.RunHandler{Runs: svc}
	healthHandler := &handlers.HealthHandler{Ping: opts.Ping}

	metrics.RegisterDefault()

	mux.HandleFunc("/health", healthHandler.Check)
	mux.HandleFunc("/instances", instanceHandler.List)
	mux.HandleFunc("/solve", solveHandler.Solve)
	mux.HandleFunc("/runs", runHandler.List)
	mux.HandleFunc("/runs/{id}", runHandler.Get)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
