package database

import (
	"path/filepath"
	"testing"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migrateDatabase "github.com/golang-migrate/migrate/v4/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/snake-api/internal/config"
	"github.com/yourusername/snake-api/pkg/logger"
)

func openTestSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "snake.db"),
	}, true)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestMigrateDB_SQLite_Idempotent(t *testing.T) {
	db := openTestSQLite(t)

	require.NoError(t, MigrateDB(db, config.DriverSQLite, logger.NewNop()))
	require.NoError(t, MigrateDB(db, config.DriverSQLite, logger.NewNop()), "повторный запуск не должен падать")

	var tables []string
	require.NoError(t, db.Raw("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'scores'").Scan(&tables).Error)
	assert.Equal(t, []string{"scores"}, tables)

	var indexes []string
	require.NoError(t, db.Raw("SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = 'scores' ORDER BY name").Scan(&indexes).Error)
	assert.Equal(t, []string{"idx_scores_level", "idx_scores_score"}, indexes)
}

func TestMigrateDB_UnknownDriver(t *testing.T) {
	db := openTestSQLite(t)

	err := MigrateDB(db, "oracle", logger.NewNop())

	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mysql"}, true)

	assert.Error(t, err)
}

func TestMigrateDB_SQLite_RecordsVersion(t *testing.T) {
	db := openTestSQLite(t)

	require.NoError(t, MigrateDB(db, config.DriverSQLite, logger.NewNop()))

	var rows []struct {
		Version int
		Dirty   bool
	}
	require.NoError(t, db.Raw("SELECT version, dirty FROM " + SQLiteMigrationsTable).Scan(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Version)
	assert.False(t, rows[0].Dirty)
}

func TestSQLiteMigrator_DownAndUp(t *testing.T) {
	db := openTestSQLite(t)
	require.NoError(t, MigrateDB(db, config.DriverSQLite, logger.NewNop()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	driver, err := NewSQLiteMigrationDriver(sqlDB)
	require.NoError(t, err)
	m, err := NewSQLiteMigrator(driver)
	require.NoError(t, err)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	require.NoError(t, m.Steps(-1))
	var count int64
	require.NoError(t, db.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'scores'").Scan(&count).Error)
	assert.Zero(t, count, "down удаляет таблицу")

	_, _, err = m.Version()
	assert.ErrorIs(t, err, migrateV4.ErrNilVersion)

	require.NoError(t, m.Up())
	require.NoError(t, db.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'scores'").Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSQLiteMigrator_ForceClearsDirty(t *testing.T) {
	db := openTestSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	driver, err := NewSQLiteMigrationDriver(sqlDB)
	require.NoError(t, err)

	require.NoError(t, driver.SetVersion(1, true))
	m, err := NewSQLiteMigrator(driver)
	require.NoError(t, err)

	err = m.Up()
	var dirtyErr migrateV4.ErrDirty
	assert.ErrorAs(t, err, &dirtyErr)

	require.NoError(t, m.Force(1))
	_, dirty, err := m.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestSQLiteMigrationDriver_Lock(t *testing.T) {
	db := openTestSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	driver, err := NewSQLiteMigrationDriver(sqlDB)
	require.NoError(t, err)

	require.NoError(t, driver.Lock())
	assert.ErrorIs(t, driver.Lock(), migrateDatabase.ErrLocked)
	require.NoError(t, driver.Unlock())
	assert.ErrorIs(t, driver.Unlock(), migrateDatabase.ErrNotLocked)
}
