package services

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ga"
	"delivery-route-optimizer/internal/metrics"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SolveRequest struct {
	Instance string
	Seed     int64
	Config   ga.Config
}

// SolveService runs the optimizer for stored instances. Runs and Cache are
// optional.
type SolveService struct {
	Instances ports.InstanceRepository
	Runs      ports.RunRepository
	Cache     ports.ResultCache
	Oracle    ports.DistanceOracle
	CacheTTL  time.Duration

	now   func() time.Time
	newID func() string
}

func NewSolveService(
	instances ports.InstanceRepository,
	runs ports.RunRepository,
	cache ports.ResultCache,
	oracle ports.DistanceOracle,
) *SolveService {
	return &SolveService{
		Instances: instances,
		Runs:      runs,
		Cache:     cache,
		Oracle:    oracle,
		CacheTTL:  24 * time.Hour,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Solve returns the best run for req, serving repeated requests from the
// cache when one is configured. The cache is consulted after the instance
// is loaded, so a replaced instance never matches an older entry.
func (s *SolveService) Solve(ctx context.Context, req SolveRequest) (_ *domain.Run, err error) {
	defer obs.Time(ctx, "services.Solve")(&err)

	name := strings.TrimSpace(req.Instance)
	if name == "" {
		return nil, errors.New("solve: instance name must not be empty")
	}
	if err := req.Config.Validate(); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	if s.Instances == nil || s.Oracle == nil {
		return nil, errors.New("solve: service is missing instances or oracle")
	}

	inst, err := s.Instances.GetInstance(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	key, err := CacheKey(inst, req.Seed, req.Config)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("req_id=%s cache lookup failed key=%s err=%v", obs.RequestID(ctx), key, err)
		} else if cached != nil {
			metrics.Runs.WithLabelValues("cached").Inc()
			return cached, nil
		}
	}

	solver, err := ga.NewSeeded(req.Config, req.Seed)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	solver.Observer = ga.Observers{
		progressLogger(name, obs.RequestID(ctx), req.Config.LogEvery),
		generationCounter(),
	}

	res, err := solver.Solve(ctx, inst, s.Oracle)
	if err != nil {
		status := "error"
		if ctx.Err() != nil {
			status = "cancelled"
		}
		metrics.Runs.WithLabelValues(status).Inc()
		return nil, fmt.Errorf("solve %q: %w", name, err)
	}

	sol := BuildSolution(inst, res.Best, s.Oracle)
	sol.Fitness = res.BestFitness
	sol.Feasible = res.Feasible

	if inst.NumVehicles > 0 && len(sol.Routes) > inst.NumVehicles {
		log.Printf(
			"req_id=%s warning: instance=%s uses %d routes but declares %d vehicles",
			obs.RequestID(ctx), name, len(sol.Routes), inst.NumVehicles,
		)
	}
	if !sol.Feasible {
		log.Printf("req_id=%s warning: instance=%s best solution breaches capacity", obs.RequestID(ctx), name)
	}

	run := &domain.Run{
		ID:          s.newID(),
		Instance:    name,
		Seed:        req.Seed,
		Config:      req.Config.AsMap(),
		Solution:    sol,
		Generations: res.Generations,
		Evaluations: res.Evaluations,
		History:     res.History,
		Duration:    res.Duration,
		CreatedAt:   s.now().UTC(),
	}

	metrics.Runs.WithLabelValues("ok").Inc()
	metrics.RunDuration.Observe(res.Duration.Seconds())
	metrics.BestFitness.WithLabelValues(name).Set(res.BestFitness)

	if s.Runs != nil {
		if err := s.Runs.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("solve %q: %w", name, err)
		}
	}

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, key, run, s.CacheTTL); err != nil {
			log.Printf("req_id=%s cache store failed key=%s err=%v", obs.RequestID(ctx), key, err)
		}
	}

	return run, nil
}

// GetRun returns a stored run by id.
func (s *SolveService) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	if s.Runs == nil {
		return nil, fmt.Errorf("get run %s: %w", id, ports.ErrNotFound)
	}
	return s.Runs.GetRun(ctx, id)
}

// ListRuns returns the newest stored runs, optionally for one instance.
func (s *SolveService) ListRuns(ctx context.Context, instance string, limit int) ([]*domain.Run, error) {
	if s.Runs == nil {
		return []*domain.Run{}, nil
	}
	return s.Runs.ListRuns(ctx, strings.TrimSpace(instance), limit)
}
