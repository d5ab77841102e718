package config

import (
	"delivery-route-optimizer/internal/ga"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSolverConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ga.yaml")
	body := []byte("population: 80\nvehicle_capacity: 30\ncrossover_mode: slot\npenalty_mode: proportional\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadSolverConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Population != 80 {
		t.Fatalf("population = %d, want 80", cfg.Population)
	}
	if cfg.VehicleCapacity != 30 {
		t.Fatalf("capacity = %v, want 30", cfg.VehicleCapacity)
	}
	if cfg.CrossoverMode != ga.CrossoverSlot || cfg.PenaltyMode != ga.PenaltyProportional {
		t.Fatalf("modes = %q/%q", cfg.CrossoverMode, cfg.PenaltyMode)
	}
	if cfg.Generations != ga.DefaultConfig().Generations {
		t.Fatalf("generations = %d, want default", cfg.Generations)
	}
}

func TestLoadSolverConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ga.yaml")
	if err := os.WriteFile(path, []byte("mutation_rate: 3\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadSolverConfig(path); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := LoadSolverConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GA_GENERATIONS", "250")
	t.Setenv("GA_MUTATION_RATE", "0.05")
	t.Setenv("GA_CROSSOVER_MODE", "slot")

	cfg, err := ApplyEnv(ga.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generations != 250 || cfg.MutationRate != 0.05 || cfg.CrossoverMode != ga.CrossoverSlot {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	t.Setenv("GA_POPULATION", "lots")
	if _, err := ApplyEnv(ga.DefaultConfig()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestGetFallback(t *testing.T) {
	t.Setenv("CVRP_TEST_KEY", "  ")
	if got := Get("CVRP_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("Get = %q, want fallback", got)
	}
	t.Setenv("CVRP_TEST_KEY", "value")
	if got := Get("CVRP_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("Get = %q, want value", got)
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("SOLVE_MAX_POPULATION", " 250 ")
	if n, err := GetInt("SOLVE_MAX_POPULATION", 10); err != nil || n != 250 {
		t.Fatalf("GetInt = %d, %v, want 250", n, err)
	}

	t.Setenv("SOLVE_MAX_POPULATION", "")
	if n, err := GetInt("SOLVE_MAX_POPULATION", 10); err != nil || n != 10 {
		t.Fatalf("GetInt fallback = %d, %v, want 10", n, err)
	}

	t.Setenv("SOLVE_MAX_POPULATION", "lots")
	if _, err := GetInt("SOLVE_MAX_POPULATION", 10); err == nil {
		t.Fatalf("expected parse error")
	}
}
