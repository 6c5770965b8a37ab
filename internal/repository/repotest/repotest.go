// Package repotest opens throwaway SQLite databases for tests.
package repotest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory database closed at test cleanup.
// A single connection keeps every query on the same in-memory database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(domain.Tables...))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// NewStore returns a GormStore over OpenDB.
func NewStore(t *testing.T) *repository.GormStore {
	t.Helper()
	return repository.NewGormStore(OpenDB(t))
}
