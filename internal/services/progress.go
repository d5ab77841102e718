package services

import (
	"delivery-route-optimizer/internal/ga"
	"delivery-route-optimizer/internal/metrics"
	"fmt"
	"io"
	"log"
)

// reportable is true for every n-th generation and for the last one.
func reportable(s ga.GenerationStats, every int) bool {
	return s.Generation%every == 0 || s.Generation == s.Generations-1
}

// progressLogger logs every n-th generation and the last one.
func progressLogger(instance, reqID string, every int) ga.Observer {
	if every <= 0 {
		return nil
	}
	return ga.ObserverFunc(func(s ga.GenerationStats) {
		if !reportable(s, every) {
			return
		}
		log.Printf(
			"req_id=%s instance=%s generation=%d/%d best=%.4f gen_best=%.4f mean=%.4f",
			reqID, instance, s.Generation, s.Generations, s.BestFitness, s.GenerationBest, s.MeanFitness,
		)
	})
}

// ProgressPrinter writes "Generation g, Best Distance: d" lines to w for
// every n-th generation and the last one. It returns nil when every <= 0.
func ProgressPrinter(w io.Writer, every int) ga.Observer {
	if every <= 0 {
		return nil
	}
	return ga.ObserverFunc(func(s ga.GenerationStats) {
		if reportable(s, every) {
			fmt.Fprintf(w, "Generation %d, Best Distance: %.4f\n", s.Generation, s.BestFitness)
		}
	})
}

func generationCounter() ga.Observer {
	return ga.ObserverFunc(func(ga.GenerationStats) {
		metrics.Generations.Inc()
	})
}
