package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createInstancesQuery := `
	CREATE TABLE IF NOT EXISTS instances (
		name TEXT PRIMARY KEY,
		depot_x REAL NOT NULL,
		depot_y REAL NOT NULL,
		num_vehicles INTEGER NOT NULL DEFAULT 0
	);
	`

	createDeliveriesQuery := `
	CREATE TABLE IF NOT EXISTS deliveries (
		instance TEXT NOT NULL REFERENCES instances(name) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		demand REAL NOT NULL,
		PRIMARY KEY (instance, idx)
	);
	`

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		instance TEXT NOT NULL,
		seed INTEGER NOT NULL,
		config TEXT NOT NULL,
		fitness REAL NOT NULL,
		distance REAL NOT NULL,
		feasible INTEGER NOT NULL,
		routes TEXT NOT NULL,
		history TEXT NOT NULL,
		generations INTEGER NOT NULL,
		evaluations INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_runs_instance_created
	ON runs(instance, created_at);
	`

	return execSchema(db, "init schema", []string{
		createInstancesQuery,
		createDeliveriesQuery,
		createRunsQuery,
		createIndexQuery,
	})
}

func execSchema(db *sql.DB, op string, statements []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("%s: exec statement #%d: %w", op, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit tx: %w", op, err)
	}

	return nil
}

// Populate the database with instances read from a JSON file holding either
// one instance or an array of named instances.
func SeedFromJSON(db *sql.DB, jsonPath string) (int, error) {
	f, err := os.Open(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed instances: open %q: %w", jsonPath, err)
	}
	defer f.Close()

	insts, err := DecodeInstances(f)
	if err != nil {
		return 0, fmt.Errorf("seed instances: %w", err)
	}

	seen := make(map[string]struct{}, len(insts))
	for i, inst := range insts {
		name := strings.TrimSpace(inst.Name)
		if _, dup := seen[name]; dup {
			return 0, fmt.Errorf("seed instances: item %d: duplicate name %q", i+1, name)
		}
		seen[name] = struct{}{}
	}

	repo := NewSqliteInstanceRepository(db)
	for _, inst := range insts {
		if err := repo.SaveInstance(context.Background(), inst); err != nil {
			return 0, fmt.Errorf("seed instances: %w", err)
		}
	}

	return len(insts), nil
}
