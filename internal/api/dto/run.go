package dto

import (
	"encoding/json"
	"time"
)

// SolveRequest selects a stored instance. Config holds GA overrides applied
// on top of the server defaults; omitted fields keep their default.
type SolveRequest struct {
	Instance string          `json:"instance"`
	Seed     *int64          `json:"seed"`
	Config   json.RawMessage `json:"config"`
}

type RouteResponse struct {
	Deliveries []int       `json:"deliveries"`
	Stops      [][]float64 `json:"stops"`
	Load       float64     `json:"load"`
	Distance   float64     `json:"distance"`
}

type RunResponse struct {
	ID            string          `json:"id"`
	Instance      string          `json:"instance"`
	Seed          int64           `json:"seed"`
	Config        map[string]any  `json:"config"`
	TotalDistance float64         `json:"total_distance"`
	Fitness       float64         `json:"fitness"`
	Feasible      bool            `json:"feasible"`
	Routes        []RouteResponse `json:"routes"`
	Generations   int             `json:"generations"`
	Evaluations   int             `json:"evaluations"`
	History       []float64       `json:"history,omitempty"`
	DurationMs    int64           `json:"duration_ms"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}
