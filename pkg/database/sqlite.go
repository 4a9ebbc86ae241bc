package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/yourusername/snake-api/pkg/logger"
)

// NewSQLiteDB открывает (или создает) файл SQLite по пути path
func NewSQLiteDB(path string, production bool) (*gorm.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogLevel(production),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// SQLite допускает одного писателя; один коннект убирает SQLITE_BUSY под нагрузкой
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// migrateSQLiteDB применяет встроенные sqlite/ миграции через golang-migrate.
// Версия хранится в schema_migrations, повторный запуск ничего не меняет.
func migrateSQLiteDB(db *gorm.DB, log *logger.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	driver, err := NewSQLiteMigrationDriver(sqlDB)
	if err != nil {
		return fmt.Errorf("не удалось создать драйвер sqlite для migrate: %w", err)
	}

	m, err := NewSQLiteMigrator(driver)
	if err != nil {
		return err
	}
	return applyUp(m, log)
}
