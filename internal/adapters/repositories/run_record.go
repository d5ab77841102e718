package repositories

import (
	"delivery-route-optimizer/internal/domain"
	"encoding/json"
	"fmt"
	"time"
)

type routeRecord struct {
	Deliveries []int       `json:"deliveries"`
	Stops      [][]float64 `json:"stops"`
	Load       float64     `json:"load"`
	Distance   float64     `json:"distance"`
}

// runColumns holds the encoded column values of one runs row.
type runColumns struct {
	id          string
	instance    string
	seed        int64
	config      string
	fitness     float64
	distance    float64
	feasible    bool
	routes      string
	history     string
	generations int
	evaluations int
	durationMs  int64
	createdAt   time.Time
}

func encodeRun(run *domain.Run) (runColumns, error) {
	cfg := run.Config
	if cfg == nil {
		cfg = map[string]any{}
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return runColumns{}, fmt.Errorf("encode run: config: %w", err)
	}

	routes := make([]routeRecord, 0, len(run.Solution.Routes))
	for _, r := range run.Solution.Routes {
		rec := routeRecord{
			Deliveries: r.Deliveries,
			Stops:      make([][]float64, 0, len(r.Stops)),
			Load:       r.Load,
			Distance:   r.Distance,
		}
		for _, s := range r.Stops {
			rec.Stops = append(rec.Stops, s.ToList())
		}
		routes = append(routes, rec)
	}
	routesJSON, err := json.Marshal(routes)
	if err != nil {
		return runColumns{}, fmt.Errorf("encode run: routes: %w", err)
	}

	history := run.History
	if history == nil {
		history = []float64{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return runColumns{}, fmt.Errorf("encode run: history: %w", err)
	}

	return runColumns{
		id:          run.ID,
		instance:    run.Instance,
		seed:        run.Seed,
		config:      string(cfgJSON),
		fitness:     run.Solution.Fitness,
		distance:    run.Solution.TotalDistance,
		feasible:    run.Solution.Feasible,
		routes:      string(routesJSON),
		history:     string(historyJSON),
		generations: run.Generations,
		evaluations: run.Evaluations,
		durationMs:  run.Duration.Milliseconds(),
		createdAt:   run.CreatedAt.UTC(),
	}, nil
}

func (c runColumns) decode() (*domain.Run, error) {
	run := &domain.Run{
		ID:       c.id,
		Instance: c.instance,
		Seed:     c.seed,
		Solution: domain.Solution{
			Fitness:       c.fitness,
			TotalDistance: c.distance,
			Feasible:      c.feasible,
		},
		Generations: c.generations,
		Evaluations: c.evaluations,
		Duration:    time.Duration(c.durationMs) * time.Millisecond,
		CreatedAt:   c.createdAt.UTC(),
	}

	if err := json.Unmarshal([]byte(c.config), &run.Config); err != nil {
		return nil, fmt.Errorf("decode run %s: config: %w", c.id, err)
	}
	if err := json.Unmarshal([]byte(c.history), &run.History); err != nil {
		return nil, fmt.Errorf("decode run %s: history: %w", c.id, err)
	}

	var routes []routeRecord
	if err := json.Unmarshal([]byte(c.routes), &routes); err != nil {
		return nil, fmt.Errorf("decode run %s: routes: %w", c.id, err)
	}
	for i, r := range routes {
		rc := domain.RouteCoordinates{
			Deliveries: r.Deliveries,
			Stops:      make([]domain.Location, 0, len(r.Stops)),
			Load:       r.Load,
			Distance:   r.Distance,
		}
		for _, xy := range r.Stops {
			loc, err := toLocation(xy)
			if err != nil {
				return nil, fmt.Errorf("decode run %s: route %d: %w", c.id, i, err)
			}
			rc.Stops = append(rc.Stops, loc)
		}
		run.Solution.Routes = append(run.Solution.Routes, rc)
	}

	return run, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const runSelectColumns = `id, instance, seed, config, fitness, distance, feasible,
	routes, history, generations, evaluations, duration_ms, created_at`

func scanRun(row scanner) (*domain.Run, error) {
	var c runColumns
	err := row.Scan(
		&c.id, &c.instance, &c.seed, &c.config, &c.fitness, &c.distance, &c.feasible,
		&c.routes, &c.history, &c.generations, &c.evaluations, &c.durationMs, &c.createdAt,
	)
	if err != nil {
		return nil, err
	}
	return c.decode()
}
