package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// Runs counts optimizer runs by outcome (ok, cached, cancelled, error).
	Runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ga_runs_total", Help: "Optimizer runs by status."},
		[]string{"status"},
	)

	Generations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ga_generations_total", Help: "Generations evolved across all runs."},
	)

	// BestFitness is the best-known fitness of the latest run per instance.
	BestFitness = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "ga_best_fitness", Help: "Best-known fitness of the latest run."},
		[]string{"instance"},
	)

	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ga_run_duration_seconds",
			Help:    "Optimizer run duration in seconds.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)
)

var regOnce sync.Once

// RegisterDefault registers collectors to Registry. Safe to call repeatedly.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(Runs)
		Registry.MustRegister(Generations)
		Registry.MustRegister(BestFitness)
		Registry.MustRegister(RunDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
