package services

import (
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ga"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Runs sharing instance data, seed and config produce the same result, so
// they share one cache entry.
var cacheNamespace = uuid.MustParse("6f1c2d0e-5a8b-4c57-9e3d-2b7a41f08c96")

// CacheKey fingerprints a solve request over the instance contents, the seed
// and the config. Replacing an instance under the same name changes the key.
// Workers and LogEvery are not part of the key since they do not change the
// outcome.
func CacheKey(inst *domain.Instance, seed int64, cfg ga.Config) (string, error) {
	if inst == nil {
		return "", errors.New("cache key: instance is nil")
	}

	deliveries := make([][]float64, 0, len(inst.Deliveries))
	for _, d := range inst.Deliveries {
		deliveries = append(deliveries, d.ToList())
	}

	body, err := json.Marshal(struct {
		Instance    string         `json:"instance"`
		Depot       []float64      `json:"depot"`
		Deliveries  [][]float64    `json:"deliveries"`
		Demands     []float64      `json:"demands"`
		NumVehicles int            `json:"num_vehicles"`
		Seed        int64          `json:"seed"`
		Config      map[string]any `json:"config"`
	}{inst.Name, inst.Depot.ToList(), deliveries, inst.Demands, inst.NumVehicles, seed, cfg.AsMap()})
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}

	return inst.Name + ":" + uuid.NewSHA1(cacheNamespace, body).String(), nil
}
