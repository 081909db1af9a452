// Package db opens the relational (GORM) storage backend.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shopdesk_backend/internal/platform/config"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Opener opens a GORM connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor returns the Opener for a relational storage driver.
func OpenerFor(driver string) (Opener, error) {
	gcfg := &gorm.Config{TranslateError: true}
	switch driver {
	case config.StoragePostgres:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }, nil
	case config.StorageSQLite:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }, nil
	default:
		return nil, fmt.Errorf("storage driver %q is not relational", driver)
	}
}

// DSN returns the connection string for the configured relational driver.
func DSN(cfg config.Config) string {
	if cfg.StorageDriver == config.StorageSQLite {
		return cfg.SQLitePath
	}
	return cfg.DatabaseURL
}

// ConnectWithRetry keeps calling open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects to the relational backend and, when enabled, migrates models.
func OpenDB(cfg config.Config, models ...any) (*gorm.DB, error) {
	open, err := OpenerFor(cfg.StorageDriver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(DSN(cfg), 60*time.Second, open)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure.
// TranslateError covers the registered dialects; pgconn is checked for
// errors raised outside GORM's translation (e.g. inside raw transactions).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return isPgUniqueViolation(err)
}
