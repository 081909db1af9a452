// Package dbtest opens throwaway SQLite databases for adapter tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopdesk_backend/internal/platform/config"
	"shopdesk_backend/internal/platform/db"
)

// Open migrates models into a fresh file-backed SQLite database that lives
// for the duration of t.
func Open(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenDB(config.Config{
		StorageDriver: config.StorageSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "test.db"),
		RunMigrations: true,
	}, models...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
