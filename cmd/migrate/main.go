package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"financetracker/internal/config"
	"financetracker/internal/database"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Standalone migration runner for deploy pipelines. The API server can also
// migrate on boot with AUTO_MIGRATE=true; this binary exists for setups where
// schema changes are applied before rollout.
func main() {
	status := flag.Bool("status", false, "print migration status and exit")
	seed := flag.Bool("seed", false, "load seed data after migrating")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)

	if err := migrator.WaitForDatabase(); err != nil {
		logger.Error("Database not reachable", "error", err)
		os.Exit(1)
	}

	if *status {
		version, dirty, err := migrator.Status()
		if err != nil {
			logger.Error("Failed to get migration status", "error", err)
			os.Exit(1)
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return
	}

	if err := migrator.Apply(); err != nil {
		logger.Error("Migrations failed", "error", err)
		os.Exit(1)
	}

	if *seed {
		if err := migrator.Seed(); err != nil {
			logger.Error("Seeding failed", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Migrations complete")
}
