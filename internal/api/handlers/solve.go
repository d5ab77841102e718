package handlers

import (
	"bytes"
	"context"
	"delivery-route-optimizer/internal/api/dto"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ga"
	"delivery-route-optimizer/internal/ports"
	"delivery-route-optimizer/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

type Solver interface {
	Solve(ctx context.Context, req services.SolveRequest) (*domain.Run, error)
}

const (
	DefaultMaxPopulation  = 5000
	DefaultMaxGenerations = 10000

	// Nonstandard status for a client that went away mid-request.
	statusClientClosedRequest = 499
)

type SolveHandler struct {
	Service  Solver
	Defaults ga.Config
	// Timeout bounds a single solve; zero means no limit beyond the request.
	Timeout time.Duration
	// Upper bounds on population and generations; zero uses the package defaults.
	MaxPopulation  int
	MaxGenerations int
}

func (h *SolveHandler) checkLimits(cfg ga.Config) error {
	maxPop := h.MaxPopulation
	if maxPop <= 0 {
		maxPop = DefaultMaxPopulation
	}
	maxGen := h.MaxGenerations
	if maxGen <= 0 {
		maxGen = DefaultMaxGenerations
	}

	if cfg.Population > maxPop {
		return fmt.Errorf("population must be <= %d (got %d)", maxPop, cfg.Population)
	}
	if cfg.Generations > maxGen {
		return fmt.Errorf("generations must be <= %d (got %d)", maxGen, cfg.Generations)
	}
	return nil
}

// Solve runs the optimizer for a stored instance and returns the best run.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest

	defer r.Body.Close()
	if err := decodeStrict(r.Body, &req); err != nil {
		if errors.Is(err, errTrailingData) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	name := strings.TrimSpace(req.Instance)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "instance is required")
		return
	}

	cfg := h.Defaults
	if len(req.Config) > 0 && !bytes.Equal(req.Config, []byte("null")) {
		if err := decodeStrict(bytes.NewReader(req.Config), &cfg); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid config: "+err.Error())
			return
		}
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.checkLimits(cfg); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	run, err := h.Service.Solve(ctx, services.SolveRequest{Instance: name, Seed: seed, Config: cfg})
	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "instance not found")
		return
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "solve timed out")
		return
	case errors.Is(err, context.Canceled):
		log.Printf("solve abandoned: instance=%s client closed request", name)
		w.WriteHeader(statusClientClosedRequest)
		return
	case err != nil:
		log.Printf("solve failed: instance=%s err=%v", name, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toRunResponse(run, true))
}
