package main

import (
	"database/sql"
	"delivery-route-optimizer/internal/adapters/repositories"
	"delivery-route-optimizer/internal/config"
	"delivery-route-optimizer/internal/platform/db"
	"log"
)

func main() {
	if !config.LoadEnv() {
		log.Println("No .env file found (using environment variables)")
	}

	sqlite, err := db.OpenSqlite(config.Get("DB_PATH", "data/app.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer sqlite.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/instances.json")
	if err := initAndSeed(sqlite, seedPath); err != nil {
		log.Fatal(err)
	}

	// Runs move to postgres when DATABASE_URL is set.
	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		log.Println("Initializing postgres runs schema...")
		if err := repositories.InitPostgresSchema(pg); err != nil {
			log.Fatalf("postgres schema initialization failed: %v", err)
		}
		log.Println("Postgres schema ready.")
	}
}

func initAndSeed(db *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	n, err := repositories.SeedFromJSON(db, seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. instances=%d", n)

	return nil
}
