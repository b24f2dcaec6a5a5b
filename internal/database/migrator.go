package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	migrationsDir = "db/migrations"
	seedsDir      = "db/seeds"

	readinessAttempts = 30
	readinessInterval = 2 * time.Second
)

// Migrator applies versioned SQL migrations and optional seed data.
type Migrator struct {
	db            *sql.DB
	logger        *slog.Logger
	migrationsDir string
	seedsDir      string
}

// NewMigrator creates a migrator over the given connection
func NewMigrator(db *sql.DB, logger *slog.Logger) *Migrator {
	return &Migrator{
		db:            db,
		logger:        logger,
		migrationsDir: migrationsDir,
		seedsDir:      seedsDir,
	}
}

// WaitForDatabase blocks until the database answers pings or attempts run out
func (m *Migrator) WaitForDatabase() error {
	for attempt := 1; attempt <= readinessAttempts; attempt++ {
		if err := m.db.Ping(); err == nil {
			m.logger.Info("Database is ready")
			return nil
		} else {
			m.logger.Warn("Database not ready", "attempt", attempt, "max_attempts", readinessAttempts, "error", err)
		}
		time.Sleep(readinessInterval)
	}
	return fmt.Errorf("database not ready after %d attempts", readinessAttempts)
}

// Apply runs all pending migrations, forcing past a dirty version first
func (m *Migrator) Apply() error {
	if _, err := os.Stat(m.migrationsDir); os.IsNotExist(err) {
		m.logger.Warn("Migrations directory not found, skipping", "path", m.migrationsDir)
		return nil
	}

	instance, err := m.newInstance()
	if err != nil {
		return err
	}

	version, dirty, err := instance.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	if dirty {
		m.logger.Warn("Database is in dirty state, forcing version", "version", version)
		if err := instance.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	switch err := instance.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		m.logger.Info("Schema already up to date", "version", version)
	case err != nil:
		return fmt.Errorf("migration failed: %w", err)
	default:
		newVersion, _, verr := instance.Version()
		if verr != nil {
			return fmt.Errorf("failed to read migration version: %w", verr)
		}
		m.logger.Info("Migrations applied", "version", newVersion)
	}

	return nil
}

// Seed executes every .sql file under the seeds directory. A failing file is
// logged and skipped so the remaining seed set still loads.
func (m *Migrator) Seed() error {
	if _, err := os.Stat(m.seedsDir); os.IsNotExist(err) {
		m.logger.Info("Seeds directory not found, skipping", "path", m.seedsDir)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(m.seedsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to find seed files: %w", err)
	}
	if len(files) == 0 {
		m.logger.Info("No seed files found", "path", m.seedsDir)
		return nil
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", file, err)
		}

		if _, err := m.db.Exec(string(content)); err != nil {
			m.logger.Warn("Seed file failed", "file", filepath.Base(file), "error", err)
			continue
		}
		m.logger.Info("Seed file applied", "file", filepath.Base(file))
	}

	return nil
}

// Status reports the current schema version and dirty flag
func (m *Migrator) Status() (version uint, dirty bool, err error) {
	instance, err := m.newInstance()
	if err != nil {
		return 0, false, err
	}
	return instance.Version()
}

func (m *Migrator) newInstance() (*migrate.Migrate, error) {
	absPath, err := filepath.Abs(m.migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	instance, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return instance, nil
}

// RunStartupMigrations applies migrations on boot when AUTO_MIGRATE=true,
// plus seed data when SEED_DATABASE=true
func RunStartupMigrations(db *sql.DB, logger *slog.Logger) error {
	if os.Getenv("AUTO_MIGRATE") != "true" {
		logger.Info("Auto-migration disabled")
		return nil
	}

	migrator := NewMigrator(db, logger)

	if err := migrator.WaitForDatabase(); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}

	if err := migrator.Apply(); err != nil {
		return fmt.Errorf("migration execution failed: %w", err)
	}

	if os.Getenv("SEED_DATABASE") == "true" {
		if err := migrator.Seed(); err != nil {
			logger.Warn("Seed data loading failed", "error", err)
		}
	}

	return nil
}
