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

// SQLite-backed implementation of the RunRepository port.
type SqliteRunRepository struct{ DB *sql.DB }

func NewSqliteRunRepository(db *sql.DB) *SqliteRunRepository {
	return &SqliteRunRepository{DB: db}
}

func (s *SqliteRunRepository) SaveRun(ctx context.Context, run *domain.Run) (err error) {
	defer obs.Time(ctx, "runs.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("sqlite run repository: DB is nil")
	}
	if run == nil || run.ID == "" {
		return errors.New("save run: run id must not be empty")
	}

	c, err := encodeRun(run)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO runs (`+runSelectColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		c.id, c.instance, c.seed, c.config, c.fitness, c.distance, c.feasible,
		c.routes, c.history, c.generations, c.evaluations, c.durationMs, c.createdAt,
	)
	if err != nil {
		return fmt.Errorf("save run %s: insert: %w", run.ID, err)
	}

	return nil
}

func (s *SqliteRunRepository) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite run repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+runSelectColumns+` FROM runs WHERE id = ?;`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}

	return run, nil
}

// ListRuns returns the newest runs first. An empty instance matches all runs.
func (s *SqliteRunRepository) ListRuns(ctx context.Context, instance string, limit int) ([]*domain.Run, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite run repository: DB is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT `+runSelectColumns+`
	FROM runs
	WHERE ? = '' OR instance = ?
	ORDER BY created_at DESC, id
	LIMIT ?;
	`, instance, instance, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

func collectRuns(rows *sql.Rows) ([]*domain.Run, error) {
	runs := make([]*domain.Run, 0, 16)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
