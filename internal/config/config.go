package config

import (
	"delivery-route-optimizer/internal/ga"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadEnv loads a .env file when present. A missing file is not an error;
// the process environment is used as-is.
func LoadEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt parses the environment value for key as an int, returning fallback
// when unset or empty.
func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("env %s=%q: %w", key, v, err)
	}
	return n, nil
}

// LoadSolverConfig reads GA parameters from a YAML file on top of
// ga.DefaultConfig. An empty path returns the defaults.
func LoadSolverConfig(path string) (ga.Config, error) {
	cfg := ga.DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return ga.Config{}, fmt.Errorf("load solver config: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return ga.Config{}, fmt.Errorf("load solver config: parse yaml %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return ga.Config{}, fmt.Errorf("load solver config %q: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides GA parameters from GA_* environment variables.
func ApplyEnv(cfg ga.Config) (ga.Config, error) {
	ints := []struct {
		key string
		dst *int
	}{
		{"GA_POPULATION", &cfg.Population},
		{"GA_GENERATIONS", &cfg.Generations},
		{"GA_TOURNAMENT_SIZE", &cfg.TournamentSize},
		{"GA_ELITE", &cfg.Elite},
		{"GA_WORKERS", &cfg.Workers},
		{"GA_LOG_EVERY", &cfg.LogEvery},
	}
	for _, f := range ints {
		v := Get(f.key, "")
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return ga.Config{}, fmt.Errorf("apply env: %s=%q: %w", f.key, v, err)
		}
		*f.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"GA_MUTATION_RATE", &cfg.MutationRate},
		{"GA_CROSSOVER_RATE", &cfg.CrossoverRate},
		{"GA_VEHICLE_CAPACITY", &cfg.VehicleCapacity},
		{"GA_CAPACITY_PENALTY", &cfg.CapacityPenalty},
	}
	for _, f := range floats {
		v := Get(f.key, "")
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ga.Config{}, fmt.Errorf("apply env: %s=%q: %w", f.key, v, err)
		}
		*f.dst = x
	}

	if v := Get("GA_PENALTY_MODE", ""); v != "" {
		cfg.PenaltyMode = ga.PenaltyMode(v)
	}
	if v := Get("GA_CROSSOVER_MODE", ""); v != "" {
		cfg.CrossoverMode = ga.CrossoverMode(v)
	}

	if err := cfg.Validate(); err != nil {
		return ga.Config{}, fmt.Errorf("apply env: %w", err)
	}
	return cfg, nil
}
