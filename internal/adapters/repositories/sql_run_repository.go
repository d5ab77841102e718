package repositories

import (
	"context"
	"database/sql"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"fmt"
)

// SQLRunRepository stores runs in postgres through the pgx stdlib driver.
type SQLRunRepository struct {
	DB *sql.DB
}

func NewSQLRunRepository(db *sql.DB) *SQLRunRepository {
	return &SQLRunRepository{DB: db}
}

// InitPostgresSchema creates the runs table on a postgres database.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	return execSchema(db, "init postgres schema", []string{
		`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			instance TEXT NOT NULL,
			seed BIGINT NOT NULL,
			config JSONB NOT NULL,
			fitness DOUBLE PRECISION NOT NULL,
			distance DOUBLE PRECISION NOT NULL,
			feasible BOOLEAN NOT NULL,
			routes JSONB NOT NULL,
			history JSONB NOT NULL,
			generations INTEGER NOT NULL,
			evaluations INTEGER NOT NULL,
			duration_ms BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_runs_instance_created
		ON runs(instance, created_at DESC);
		`,
	})
}

func (s *SQLRunRepository) SaveRun(ctx context.Context, run *domain.Run) (err error) {
	defer obs.Time(ctx, "runs.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("sql run repository: db is nil")
	}
	if run == nil || run.ID == "" {
		return errors.New("save run: run id must not be empty")
	}

	c, err := encodeRun(run)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO runs (`+runSelectColumns+`)
	VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8::jsonb, $9::jsonb, $10, $11, $12, $13)
	ON CONFLICT (id) DO UPDATE
	SET fitness = EXCLUDED.fitness,
		distance = EXCLUDED.distance,
		feasible = EXCLUDED.feasible,
		routes = EXCLUDED.routes,
		history = EXCLUDED.history,
		generations = EXCLUDED.generations,
		evaluations = EXCLUDED.evaluations,
		duration_ms = EXCLUDED.duration_ms;
	`,
		c.id, c.instance, c.seed, c.config, c.fitness, c.distance, c.feasible,
		c.routes, c.history, c.generations, c.evaluations, c.durationMs, c.createdAt,
	)
	if err != nil {
		return fmt.Errorf("save run %s: insert: %w", run.ID, err)
	}

	return nil
}

func (s *SQLRunRepository) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	if s.DB == nil {
		return nil, errors.New("sql run repository: db is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT id, instance, seed, config::text, fitness, distance, feasible,
		routes::text, history::text, generations, evaluations, duration_ms, created_at
	FROM runs
	WHERE id = $1;
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}

	return run, nil
}

func (s *SQLRunRepository) ListRuns(ctx context.Context, instance string, limit int) ([]*domain.Run, error) {
	if s.DB == nil {
		return nil, errors.New("sql run repository: db is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, instance, seed, config::text, fitness, distance, feasible,
		routes::text, history::text, generations, evaluations, duration_ms, created_at
	FROM runs
	WHERE $1 = '' OR instance = $1
	ORDER BY created_at DESC, id
	LIMIT $2;
	`, instance, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	return collectRuns(rows)
}
