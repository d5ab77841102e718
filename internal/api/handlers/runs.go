package handlers

import (
	"context"
	"delivery-route-optimizer/internal/api/dto"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"log"
	"net/http"
	"strconv"
)

type RunReader interface {
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	ListRuns(ctx context.Context, instance string, limit int) ([]*domain.Run, error)
}

// RunHandler exposes stored optimizer runs.
type RunHandler struct {
	Runs RunReader
}

// List returns the newest runs, filtered by ?instance= and bounded by ?limit=.
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 500 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	runs, err := h.Runs.ListRuns(r.Context(), r.URL.Query().Get("instance"), limit)
	if err != nil {
		log.Printf("list runs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.RunResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, toRunResponse(run, false))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := r.PathValue("id")
	run, err := h.Runs.GetRun(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		log.Printf("get run failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toRunResponse(run, true))
}

func toRunResponse(run *domain.Run, withHistory bool) dto.RunResponse {
	res := dto.RunResponse{
		ID:            run.ID,
		Instance:      run.Instance,
		Seed:          run.Seed,
		Config:        run.Config,
		TotalDistance: run.Solution.TotalDistance,
		Fitness:       run.Solution.Fitness,
		Feasible:      run.Solution.Feasible,
		Routes:        make([]dto.RouteResponse, 0, len(run.Solution.Routes)),
		Generations:   run.Generations,
		Evaluations:   run.Evaluations,
		DurationMs:    run.Duration.Milliseconds(),
		CreatedAt:     run.CreatedAt,
	}
	if withHistory {
		res.History = run.History
	}

	for _, rc := range run.Solution.Routes {
		stops := make([][]float64, 0, len(rc.Stops))
		for _, s := range rc.Stops {
			stops = append(stops, s.ToList())
		}
		res.Routes = append(res.Routes, dto.RouteResponse{
			Deliveries: rc.Deliveries,
			Stops:      stops,
			Load:       rc.Load,
			Distance:   rc.Distance,
		})
	}

	return res
}
