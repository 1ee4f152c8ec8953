package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Environment string
	Database    DatabaseConfig
	Accrual     AccrualConfig
}

type DatabaseConfig struct {
	Driver          string
	Path            string // sqlite file path, ":memory:" for tests
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AccrualConfig struct {
	// DaysInYear is the divisor for daily interest. 365 matches the
	// product's banking conventions; leap years are not special-cased.
	DaysInYear int

	// DefaultPostingDay is used for deposits created without an explicit
	// posting day.
	DefaultPostingDay int

	// ReconcileInterval is how often the accrual loop re-runs over all
	// deposit accounts.
	ReconcileInterval time.Duration
}

func Load() *Config {
	// A missing .env file is fine; environment variables still apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverSQLite),
			Path:            getEnv("DB_PATH", "pennyledger.db"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "pennyledger_user"),
			Password:        getEnv("DB_PASSWORD", "pennyledger_password"),
			Name:            getEnv("DB_NAME", "pennyledger_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Accrual: AccrualConfig{
			DaysInYear:        getIntEnv("ACCRUAL_DAYS_IN_YEAR", 365),
			DefaultPostingDay: getIntEnv("ACCRUAL_DEFAULT_POSTING_DAY", 1),
			ReconcileInterval: getDurationEnv("ACCRUAL_RECONCILE_INTERVAL", 24*time.Hour),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
