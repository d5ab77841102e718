package ga

import (
	"delivery-route-optimizer/internal/domain"
	"time"
)

type Result struct {
	Best        domain.Chromosome
	BestFitness float64
	Distance    float64
	Feasible    bool
	Generations int
	Evaluations int
	// History[g] is the best-known fitness after generation g.
	History  []float64
	Duration time.Duration
}

// GenerationStats is reported to the Observer after every generation.
type GenerationStats struct {
	Generation     int
	Generations    int
	BestFitness    float64 // best-known so far
	GenerationBest float64
	MeanFitness    float64
	Improved       bool
}

// Observer receives progress callbacks from the solver loop.
// Callbacks run on the solver goroutine and should return quickly.
type Observer interface {
	OnGeneration(stats GenerationStats)
}

type ObserverFunc func(GenerationStats)

func (f ObserverFunc) OnGeneration(s GenerationStats) { f(s) }

// Observers fans out callbacks to several observers in order.
type Observers []Observer

func (o Observers) OnGeneration(s GenerationStats) {
	for _, obs := range o {
		if obs != nil {
			obs.OnGeneration(s)
		}
	}
}
