package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

var (
	maxRetries    = 30
	retryInterval = 2 * time.Second
)

// MigrationRunner applies the SQL migrations under migrationsPath to a
// postgres database. The sqlite path never goes through here.
type MigrationRunner struct {
	db             *sql.DB
	migrationsPath string
}

func NewMigrationRunner(db *sql.DB, migrationsPath string) *MigrationRunner {
	return &MigrationRunner{
		db:             db,
		migrationsPath: migrationsPath,
	}
}

// WaitForDatabase pings until the database accepts connections or the
// retries run out.
func (m *MigrationRunner) WaitForDatabase() error {
	log.Println("Waiting for database to be ready...")

	for i := 0; i < maxRetries; i++ {
		if err := m.db.Ping(); err == nil {
			log.Println("Database is ready")
			return nil
		}

		log.Printf("Database not ready, retrying in %v... (%d/%d)", retryInterval, i+1, maxRetries)
		time.Sleep(retryInterval)
	}

	return fmt.Errorf("database did not become ready after %d retries", maxRetries)
}

func (m *MigrationRunner) RunMigrations() error {
	log.Println("Running database migrations...")

	if _, err := os.Stat(m.migrationsPath); os.IsNotExist(err) {
		log.Printf("Migrations directory %s does not exist, skipping migrations", m.migrationsPath)
		return nil
	}

	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	sourceURL := fmt.Sprintf("file://%s", m.migrationsPath)
	migrator, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	version, dirty, err := migrator.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		log.Printf("Database is in dirty state at version %d, forcing version...", version)
		if err := migrator.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force migration version: %w", err)
		}
	}

	if err := migrator.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Println("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Migrations completed successfully")
	return nil
}

func (m *MigrationRunner) GetMigrationStatus() (uint, bool, error) {
	if _, err := os.Stat(m.migrationsPath); os.IsNotExist(err) {
		return 0, false, fmt.Errorf("migrations directory does not exist")
	}

	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return 0, false, fmt.Errorf("failed to create migration driver: %w", err)
	}

	sourceURL := fmt.Sprintf("file://%s", m.migrationsPath)
	migrator, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create migrator: %w", err)
	}

	version, dirty, err := migrator.Version()
	if err == migrate.ErrNilVersion {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}

	return version, dirty, nil
}

// LoadSeeds executes the .sql files under seedsPath in lexical order.
func (m *MigrationRunner) LoadSeeds(seedsPath string) error {
	if _, err := os.Stat(seedsPath); os.IsNotExist(err) {
		log.Printf("Seeds directory %s does not exist, skipping seeds", seedsPath)
		return nil
	}

	entries, err := os.ReadDir(seedsPath)
	if err != nil {
		return fmt.Errorf("failed to read seeds directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}

		seedFile := filepath.Join(seedsPath, entry.Name())
		log.Printf("Loading seed file: %s", entry.Name())

		content, err := os.ReadFile(seedFile)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", entry.Name(), err)
		}

		if _, err := m.db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute seed file %s: %w", entry.Name(), err)
		}
	}

	log.Println("Seeds loaded successfully")
	return nil
}

// RunMigrationsIfEnabled runs migrations when AUTO_MIGRATE is not "false".
func RunMigrationsIfEnabled(db *sql.DB) error {
	if os.Getenv("AUTO_MIGRATE") == "false" {
		log.Println("AUTO_MIGRATE is disabled, skipping migrations")
		return nil
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}

	runner := NewMigrationRunner(db, migrationsPath)

	if err := runner.WaitForDatabase(); err != nil {
		return err
	}

	if err := runner.RunMigrations(); err != nil {
		return err
	}

	if os.Getenv("LOAD_SEEDS") == "true" {
		seedsPath := os.Getenv("SEEDS_PATH")
		if seedsPath == "" {
			seedsPath = "seeds"
		}
		if err := runner.LoadSeeds(seedsPath); err != nil {
			log.Printf("Warning: failed to load seeds: %v", err)
		}
	}

	return nil
}
