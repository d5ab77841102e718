package ga

import (
	"fmt"
	"math"
)

// PenaltyMode selects how capacity overflow is charged by the evaluator.
type PenaltyMode string

const (
	// PenaltyFixed adds CapacityPenalty once per delivery that pushes the
	// running load over capacity, regardless of the overage size.
	PenaltyFixed PenaltyMode = "fixed"
	// PenaltyProportional adds CapacityPenalty per unit of overage at each
	// offending delivery.
	PenaltyProportional PenaltyMode = "proportional"
)

// CrossoverMode selects the recombination operator.
type CrossoverMode string

const (
	// CrossoverSlot recombines corresponding route slots and repairs the child.
	CrossoverSlot CrossoverMode = "slot"
	// CrossoverOX applies order crossover to the flattened gene sequences and
	// re-slices the child with the first parent's route lengths.
	CrossoverOX CrossoverMode = "ox"
)

type Config struct {
	Population      int           `yaml:"population" json:"population"`
	Generations     int           `yaml:"generations" json:"generations"`
	MutationRate    float64       `yaml:"mutation_rate" json:"mutation_rate"`
	CrossoverRate   float64       `yaml:"crossover_rate" json:"crossover_rate"`
	TournamentSize  int           `yaml:"tournament_size" json:"tournament_size"`
	VehicleCapacity float64       `yaml:"vehicle_capacity" json:"vehicle_capacity"`
	Elite           int           `yaml:"elite" json:"elite"` // 0 = ceil(Population/10)
	CapacityPenalty float64       `yaml:"capacity_penalty" json:"capacity_penalty"`
	PenaltyMode     PenaltyMode   `yaml:"penalty_mode" json:"penalty_mode"`
	CrossoverMode   CrossoverMode `yaml:"crossover_mode" json:"crossover_mode"`
	Workers         int           `yaml:"workers" json:"workers"`     // fitness evaluation goroutines, 0 = 1
	LogEvery        int           `yaml:"log_every" json:"log_every"` // progress interval for observers
}

func DefaultConfig() Config {
	return Config{
		Population:      200,
		Generations:     20,
		MutationRate:    0.2,
		CrossoverRate:   0.8,
		TournamentSize:  5,
		VehicleCapacity: 15,
		CapacityPenalty: 1e6,
		PenaltyMode:     PenaltyFixed,
		CrossoverMode:   CrossoverOX,
		Workers:         4,
		LogEvery:        500,
	}
}

func (c Config) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf("config: population must be > 1 (got %d)", c.Population)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("config: generations must be > 0 (got %d)", c.Generations)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("config: mutation_rate must be in [0,1] (got %f)", c.MutationRate)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("config: crossover_rate must be in [0,1] (got %f)", c.CrossoverRate)
	}
	if c.TournamentSize <= 0 || c.TournamentSize > c.Population {
		return fmt.Errorf("config: tournament_size must be in [1,population] (got %d)", c.TournamentSize)
	}
	if !(c.VehicleCapacity > 0) || math.IsInf(c.VehicleCapacity, 0) {
		return fmt.Errorf("config: vehicle_capacity must be a positive number (got %v)", c.VehicleCapacity)
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		return fmt.Errorf("config: elite must be in [0,population) (got %d)", c.Elite)
	}
	if c.CapacityPenalty < 0 || math.IsNaN(c.CapacityPenalty) {
		return fmt.Errorf("config: capacity_penalty must be >= 0 (got %v)", c.CapacityPenalty)
	}
	switch c.PenaltyMode {
	case PenaltyFixed, PenaltyProportional:
	default:
		return fmt.Errorf("config: unknown penalty_mode %q", c.PenaltyMode)
	}
	switch c.CrossoverMode {
	case CrossoverSlot, CrossoverOX:
	default:
		return fmt.Errorf("config: unknown crossover_mode %q", c.CrossoverMode)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0 (got %d)", c.Workers)
	}
	if c.LogEvery < 0 {
		return fmt.Errorf("config: log_every must be >= 0 (got %d)", c.LogEvery)
	}
	return nil
}

// EliteCount is the number of chromosomes carried unchanged into the next
// generation: Elite when set, otherwise ceil(Population/10), at least 1.
func (c Config) EliteCount() int {
	if c.Elite > 0 {
		return c.Elite
	}
	n := (c.Population + 9) / 10
	if n < 1 {
		n = 1
	}
	return n
}

// AsMap flattens the config for persistence and logging.
func (c Config) AsMap() map[string]any {
	return map[string]any{
		"population":       c.Population,
		"generations":      c.Generations,
		"mutation_rate":    c.MutationRate,
		"crossover_rate":   c.CrossoverRate,
		"tournament_size":  c.TournamentSize,
		"vehicle_capacity": c.VehicleCapacity,
		"elite":            c.EliteCount(),
		"capacity_penalty": c.CapacityPenalty,
		"penalty_mode":     string(c.PenaltyMode),
		"crossover_mode":   string(c.CrossoverMode),
	}
}
