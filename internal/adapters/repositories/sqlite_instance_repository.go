package repositories

import (
	"context"
	"database/sql"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed implementation of the InstanceRepository port.
type SqliteInstanceRepository struct{ DB *sql.DB }

func NewSqliteInstanceRepository(db *sql.DB) *SqliteInstanceRepository {
	return &SqliteInstanceRepository{DB: db}
}

// Return the named instance with its deliveries in index order.
func (s *SqliteInstanceRepository) GetInstance(ctx context.Context, name string) (_ *domain.Instance, err error) {
	defer obs.Time(ctx, "instances.GetInstance")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite instance repository: DB is nil")
	}

	inst := &domain.Instance{Name: name}
	err = s.DB.QueryRowContext(ctx, `
	SELECT depot_x, depot_y, num_vehicles
	FROM instances
	WHERE name = ?;
	`, name).Scan(&inst.Depot.X, &inst.Depot.Y, &inst.NumVehicles)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get instance %q: %w", name, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query instances table: %w", name, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT x, y, demand
	FROM deliveries
	WHERE instance = ?
	ORDER BY idx;
	`, name)
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query deliveries table: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var loc domain.Location
		var demand float64
		if err := rows.Scan(&loc.X, &loc.Y, &demand); err != nil {
			return nil, fmt.Errorf("get instance %q: scan row: %w", name, err)
		}
		inst.Deliveries = append(inst.Deliveries, loc)
		inst.Demands = append(inst.Demands, demand)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get instance %q: row iteration: %w", name, err)
	}

	return inst, nil
}

// Return the names of all stored instances.
func (s *SqliteInstanceRepository) ListInstances(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite instance repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT name FROM instances ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("list instances: query instances table: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 16)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list instances: scan row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list instances: row iteration: %w", err)
	}

	return names, nil
}

// Insert or replace an instance and all of its deliveries.
func (s *SqliteInstanceRepository) SaveInstance(ctx context.Context, inst *domain.Instance) error {
	if s.DB == nil {
		return errors.New("sqlite instance repository: DB is nil")
	}
	if err := inst.Validate(); err != nil {
		return fmt.Errorf("save instance: %w", err)
	}

	name := strings.TrimSpace(inst.Name)
	if name == "" {
		return errors.New("save instance: name cannot be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save instance %q: begin tx: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deliveries WHERE instance = ?;`, name); err != nil {
		return fmt.Errorf("save instance %q: clear deliveries: %w", name, err)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT OR REPLACE INTO instances (name, depot_x, depot_y, num_vehicles)
	VALUES (?, ?, ?, ?);
	`, name, inst.Depot.X, inst.Depot.Y, inst.NumVehicles)
	if err != nil {
		return fmt.Errorf("save instance %q: insert instance: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO deliveries (instance, idx, x, y, demand)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save instance %q: prepare insert: %w", name, err)
	}
	defer stmt.Close()

	for i, loc := range inst.Deliveries {
		if _, err := stmt.ExecContext(ctx, name, i, loc.X, loc.Y, inst.Demands[i]); err != nil {
			return fmt.Errorf("save instance %q: insert delivery %d: %w", name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save instance %q: commit tx: %w", name, err)
	}

	return nil
}
