package repositories

import (
	"context"
	"database/sql"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/db"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSqlite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := InitSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return conn
}

func sampleInstance() *domain.Instance {
	return &domain.Instance{
		Name:        "small",
		Depot:       domain.Location{X: 0, Y: 0},
		Deliveries:  []domain.Location{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 10, Y: 10}},
		Demands:     []float64{5, 5, 5},
		NumVehicles: 2,
	}
}

func TestDecodeInstanceOriginalFormat(t *testing.T) {
	in := `{"depot": [0, 0], "deliveries": [[1, 2], [3, 4]], "demands": [4, 6], "num_vehicles": 3}`

	inst, err := DecodeInstance(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inst.Size() != 2 || inst.Deliveries[1] != (domain.Location{X: 3, Y: 4}) {
		t.Fatalf("deliveries = %v", inst.Deliveries)
	}
	if inst.NumVehicles != 3 || inst.TotalDemand() != 10 {
		t.Fatalf("vehicles = %d, demand = %v", inst.NumVehicles, inst.TotalDemand())
	}
}

func TestDecodeInstanceRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"mismatched demands": `{"depot": [0, 0], "deliveries": [[1, 2]], "demands": [1, 2]}`,
		"short coordinate":   `{"depot": [0], "deliveries": [[1, 2]], "demands": [1]}`,
		"unknown field":      `{"depot": [0, 0], "deliveries": [[1, 2]], "demands": [1], "speed": 3}`,
		"no deliveries":      `{"depot": [0, 0], "deliveries": [], "demands": []}`,
		"negative demand":    `{"depot": [0, 0], "deliveries": [[1, 2]], "demands": [-1]}`,
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeInstance(strings.NewReader(in)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDecodeInstancesArrayNamesUnnamed(t *testing.T) {
	in := `
	[
		{"name": "a", "depot": [0, 0], "deliveries": [[1, 1]], "demands": [1]},
		{"depot": [5, 5], "deliveries": [[6, 6]], "demands": [2]}
	]`

	insts, err := DecodeInstances(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(insts) != 2 || insts[0].Name != "a" || insts[1].Name != "instance-2" {
		t.Fatalf("names = %q, %q", insts[0].Name, insts[1].Name)
	}
}

func TestLoadInstanceJSONNamesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrp_data.json")
	body := `{"depot": [0, 0], "deliveries": [[1, 1], [2, 2]], "demands": [1, 1], "num_vehicles": 1}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	inst, err := LoadInstanceJSON(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if inst.Name != "vrp_data" {
		t.Fatalf("name = %q, want vrp_data", inst.Name)
	}
}

func TestSqliteInstanceRepositoryRoundTrip(t *testing.T) {
	conn := openTestDB(t)
	repo := NewSqliteInstanceRepository(conn)
	ctx := context.Background()

	want := sampleInstance()
	if err := repo.SaveInstance(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetInstance(ctx, "small")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Depot != want.Depot || got.NumVehicles != want.NumVehicles || got.Size() != want.Size() {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want.Deliveries {
		if got.Deliveries[i] != want.Deliveries[i] || got.Demands[i] != want.Demands[i] {
			t.Fatalf("delivery %d = %v/%v, want %v/%v", i, got.Deliveries[i], got.Demands[i], want.Deliveries[i], want.Demands[i])
		}
	}

	// Saving again with fewer deliveries replaces the old rows.
	want.Deliveries = want.Deliveries[:1]
	want.Demands = want.Demands[:1]
	if err := repo.SaveInstance(ctx, want); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, err = repo.GetInstance(ctx, "small")
	if err != nil {
		t.Fatalf("get after resave: %v", err)
	}
	if got.Size() != 1 {
		t.Fatalf("size after resave = %d, want 1", got.Size())
	}
}

func TestSqliteInstanceRepositoryNotFound(t *testing.T) {
	repo := NewSqliteInstanceRepository(openTestDB(t))

	_, err := repo.GetInstance(context.Background(), "missing")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSeedFromJSON(t *testing.T) {
	conn := openTestDB(t)
	path := filepath.Join(t.TempDir(), "instances.json")
	body := `[
		{"name": "west", "depot": [0, 0], "deliveries": [[1, 1]], "demands": [1]},
		{"name": "east", "depot": [9, 9], "deliveries": [[8, 8], [7, 7]], "demands": [2, 3]}
	]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	n, err := SeedFromJSON(conn, path)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 2 {
		t.Fatalf("seeded %d, want 2", n)
	}

	names, err := NewSqliteInstanceRepository(conn).ListInstances(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 || names[0] != "east" || names[1] != "west" {
		t.Fatalf("names = %v, want [east west]", names)
	}
}

func TestSeedFromJSONRejectsDuplicateNames(t *testing.T) {
	conn := openTestDB(t)
	path := filepath.Join(t.TempDir(), "dup.json")
	body := `[
		{"name": "x", "depot": [0, 0], "deliveries": [[1, 1]], "demands": [1]},
		{"name": "x", "depot": [0, 0], "deliveries": [[2, 2]], "demands": [1]}
	]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := SeedFromJSON(conn, path); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}

func sampleRun(id, instance string, created time.Time) *domain.Run {
	return &domain.Run{
		ID:       id,
		Instance: instance,
		Seed:     42,
		Config:   map[string]any{"population": 200, "crossover_mode": "ox"},
		Solution: domain.Solution{
			Routes: []domain.RouteCoordinates{{
				Deliveries: []int{1, 0},
				Stops:      []domain.Location{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}},
				Load:       10,
				Distance:   4,
			}},
			TotalDistance: 4,
			Fitness:       4,
			Feasible:      true,
		},
		Generations: 20,
		Evaluations: 4000,
		History:     []float64{6, 5, 4},
		Duration:    1500 * time.Millisecond,
		CreatedAt:   created,
	}
}

func TestSqliteRunRepositoryRoundTrip(t *testing.T) {
	repo := NewSqliteRunRepository(openTestDB(t))
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.SaveRun(ctx, sampleRun("r1", "small", created)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetRun(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Seed != 42 || got.Generations != 20 || got.Evaluations != 4000 {
		t.Fatalf("got %+v", got)
	}
	if !got.Solution.Feasible || got.Solution.TotalDistance != 4 {
		t.Fatalf("solution = %+v", got.Solution)
	}
	if len(got.Solution.Routes) != 1 || len(got.Solution.Routes[0].Stops) != 4 {
		t.Fatalf("routes = %+v", got.Solution.Routes)
	}
	if got.Solution.Routes[0].Deliveries[0] != 1 {
		t.Fatalf("deliveries = %v, want [1 0]", got.Solution.Routes[0].Deliveries)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Fatalf("duration = %v, want 1.5s", got.Duration)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created = %v, want %v", got.CreatedAt, created)
	}
	if got.Config["crossover_mode"] != "ox" || got.Config["population"] != float64(200) {
		t.Fatalf("config = %v", got.Config)
	}
	if len(got.History) != 3 || got.History[2] != 4 {
		t.Fatalf("history = %v", got.History)
	}
}

func TestSqliteRunRepositoryList(t *testing.T) {
	repo := NewSqliteRunRepository(openTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	runs := []*domain.Run{
		sampleRun("a", "small", base),
		sampleRun("b", "small", base.Add(time.Minute)),
		sampleRun("c", "large", base.Add(2*time.Minute)),
	}
	for _, r := range runs {
		if err := repo.SaveRun(ctx, r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}

	got, err := repo.ListRuns(ctx, "small", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("small runs = %v", runIDs(got))
	}

	all, err := repo.ListRuns(ctx, "", 2)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 || all[0].ID != "c" {
		t.Fatalf("all runs = %v", runIDs(all))
	}

	if _, err := repo.GetRun(ctx, "zzz"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func runIDs(runs []*domain.Run) []string {
	ids := make([]string, 0, len(runs))
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	return ids
}
