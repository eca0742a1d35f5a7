// Package testutil provides seeded in-memory databases for package tests.
package testutil

import (
	"testing"

	"thunder-cargo/internal/config"
	"thunder-cargo/internal/database"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory SQLite database, migrates it and loads the demo fixture.
func NewDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	db := NewEmptyDB(t)
	seeded, err := database.Seed(db)
	require.NoError(t, err)
	require.True(t, seeded)

	rdb, err := database.ReadDB(db, config.DriverSQLite)
	require.NoError(t, err)
	return db, rdb
}

// NewEmptyDB is NewDB without the fixture.
func NewEmptyDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	db, err := database.Open(cfg, zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Tek bağlantı: paylaşımlı önbellekte tablo kilidi yaşanmasın
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}
