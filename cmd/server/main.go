package main

import (
	"context"
	"database/sql"
	"delivery-route-optimizer/internal/adapters/cache"
	"delivery-route-optimizer/internal/adapters/distance"
	"delivery-route-optimizer/internal/adapters/repositories"
	"delivery-route-optimizer/internal/api"
	"delivery-route-optimizer/internal/api/handlers"
	"delivery-route-optimizer/internal/config"
	"delivery-route-optimizer/internal/ga"
	"delivery-route-optimizer/internal/platform/db"
	"delivery-route-optimizer/internal/ports"
	"delivery-route-optimizer/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if !config.LoadEnv() {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/instances.json")
	port := config.Get("PORT", "8080")

	defaults, err := solverDefaults()
	if err != nil {
		log.Fatal(err)
	}

	solveTimeout, err := time.ParseDuration(config.Get("SOLVE_TIMEOUT", "2m"))
	if err != nil {
		log.Fatalf("invalid SOLVE_TIMEOUT: %v", err)
	}

	maxPopulation, err := config.GetInt("SOLVE_MAX_POPULATION", handlers.DefaultMaxPopulation)
	if err != nil {
		log.Fatal(err)
	}
	maxGenerations, err := config.GetInt("SOLVE_MAX_GENERATIONS", handlers.DefaultMaxGenerations)
	if err != nil {
		log.Fatal(err)
	}

	sqlite, err := db.OpenSqlite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlite.Close()

	// Initialize schema and seed demo instances on startup for local runs.
	if err := initAndSeed(sqlite, seedPath); err != nil {
		log.Fatal(err)
	}

	instances := repositories.NewSqliteInstanceRepository(sqlite)

	runs, closeRuns, err := openRunRepository(sqlite)
	if err != nil {
		log.Fatal(err)
	}
	defer closeRuns()

	var resultCache ports.ResultCache
	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		rdb, err := cache.DialRedis(context.Background(), addr)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		resultCache = cache.NewRedisResultCache(rdb)
		log.Printf("result cache enabled addr=%s", addr)
	}

	svc := services.NewSolveService(instances, runs, resultCache, distance.NewEuclidean())
	router := api.NewRouter(svc, instances, api.Options{
		Defaults:     defaults,
		SolveTimeout: solveTimeout,
		Ping:         sqlite.PingContext,

		MaxPopulation:  maxPopulation,
		MaxGenerations: maxGenerations,
	})

	// Write timeout leaves room for the solve timeout plus encoding.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      solveTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Println("Shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// solverDefaults reads the GA_CONFIG yaml file, then GA_* overrides.
func solverDefaults() (ga.Config, error) {
	cfg, err := config.LoadSolverConfig(config.Get("GA_CONFIG", ""))
	if err != nil {
		return ga.Config{}, err
	}
	return config.ApplyEnv(cfg)
}

// openRunRepository stores runs in postgres when DATABASE_URL is set and in
// the sqlite database otherwise.
func openRunRepository(sqlite *sql.DB) (ports.RunRepository, func(), error) {
	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		return repositories.NewSqliteRunRepository(sqlite), func() {}, nil
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitPostgresSchema(pg); err != nil {
		pg.Close()
		return nil, nil, err
	}

	log.Println("run repository: postgres")
	return repositories.NewSQLRunRepository(pg), func() { pg.Close() }, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Printf("seed file %q not found, skipping seed", seedPath)
		return nil
	}

	n, err := repositories.SeedFromJSON(db, seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Printf("seeded instances count=%d path=%s", n, seedPath)

	return nil
}
