package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nicolasbonaa/controle-compras/internal/config"
)

// BuildDSN builds the PostgreSQL DSN from config.
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// Connect opens the pooled connection. Pool bounds come from config;
// callers await a pooled connection rather than opening new ones
// unbounded.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(BuildDSN(cfg)), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)

	return db, nil
}

// ConnectWithRetry retries the initial connection with exponential
// backoff. Used at process startup only; repository round trips are
// never retried.
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// EnsureSchema creates the solicitacoes table and its three supporting
// indexes when absent. Idempotent; never drops or alters existing data.
func EnsureSchema(db *gorm.DB) error {
	dialector := db.Dialector.Name()

	var createTable string
	if dialector == "sqlite" || dialector == "sqlite3" {
		createTable = `
			CREATE TABLE IF NOT EXISTS solicitacoes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				requester_name VARCHAR(255) NOT NULL,
				department VARCHAR(100) NOT NULL,
				cost_center VARCHAR(50) NOT NULL,
				equipment TEXT NOT NULL,
				requested_at DATETIME NOT NULL,
				status VARCHAR(20) NOT NULL DEFAULT 'Pending',
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			)`
	} else {
		createTable = `
			CREATE TABLE IF NOT EXISTS solicitacoes (
				id BIGSERIAL PRIMARY KEY,
				requester_name VARCHAR(255) NOT NULL,
				department VARCHAR(100) NOT NULL,
				cost_center VARCHAR(50) NOT NULL,
				equipment TEXT NOT NULL,
				requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				status VARCHAR(20) NOT NULL DEFAULT 'Pending',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`
	}
	if err := db.Exec(createTable).Error; err != nil {
		return fmt.Errorf("failed to create solicitacoes table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_solicitacoes_status ON solicitacoes(status)",
		"CREATE INDEX IF NOT EXISTS idx_solicitacoes_department ON solicitacoes(department)",
		"CREATE INDEX IF NOT EXISTS idx_solicitacoes_requested_at ON solicitacoes(requested_at)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// WithTransaction runs fn inside a single transaction. The current
// repository operations are all single statements; this primitive exists
// for future multi-statement use.
func WithTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}

// CheckHealth pings the store with a short timeout.
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx) == nil
}
