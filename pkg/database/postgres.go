package database

import (
	"errors"
	"fmt"
	"time"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migrateDatabase "github.com/golang-migrate/migrate/v4/database"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yourusername/snake-api/internal/config"
	"github.com/yourusername/snake-api/migrations"
	"github.com/yourusername/snake-api/pkg/logger"
)

// Open открывает подключение к БД согласно cfg.Driver
func Open(cfg config.DatabaseConfig, production bool) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgresDB(cfg, production)
	case config.DriverSQLite:
		return NewSQLiteDB(cfg.Path, production)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewPostgresDB создает новое подключение к PostgreSQL
func NewPostgresDB(cfg config.DatabaseConfig, production bool) (*gorm.DB, error) {
	db, err := gorm.Open(gormPostgres.Open(cfg.PostgresConnectionString()), &gorm.Config{
		Logger: gormLogLevel(production),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// MigrateDB идемпотентно создает таблицу scores и ее индексы.
// Безопасно вызывать при каждом старте процесса.
func MigrateDB(db *gorm.DB, driver string, log *logger.Logger) error {
	log.Info("Запуск применения миграций базы данных...", zap.String("driver", driver))

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("не удалось получить *sql.DB из *gorm.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("не удалось проверить подключение к БД перед миграцией: %w", err)
	}

	switch driver {
	case config.DriverPostgres:
		err = migratePostgresDB(db, log)
	case config.DriverSQLite:
		err = migrateSQLiteDB(db, log)
	default:
		err = fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return err
	}

	log.Info("Миграции базы данных завершены.")
	return nil
}

func migratePostgresDB(db *gorm.DB, log *logger.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	driver, err := migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
	if err != nil {
		return fmt.Errorf("не удалось создать драйвер postgres для migrate: %w", err)
	}

	m, err := NewPostgresMigrator(driver)
	if err != nil {
		return err
	}
	return applyUp(m, log)
}

// applyUp применяет все новые миграции. ErrNoChange - не ошибка.
// m.Close не вызывается: он закрыл бы общее соединение приложения.
func applyUp(m *migrateV4.Migrate, log *logger.Logger) error {
	err := m.Up()
	switch {
	case errors.Is(err, migrateV4.ErrNoChange):
		log.Info("Изменений в миграциях не найдено, база данных уже актуальна.")
	case err != nil:
		return fmt.Errorf("ошибка применения миграций 'up': %w", err)
	default:
		log.Info("Миграции успешно применены.")
	}
	return nil
}

// NewPostgresMigrator создает экземпляр migrate поверх встроенных миграций postgres/
func NewPostgresMigrator(driver migrateDatabase.Driver) (*migrateV4.Migrate, error) {
	src, err := iofs.New(migrations.FS, config.DriverPostgres)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть встроенные миграции: %w", err)
	}
	m, err := migrateV4.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать экземпляр migrate: %w", err)
	}
	return m, nil
}

func gormLogLevel(production bool) gormLogger.Interface {
	if production {
		return gormLogger.Default.LogMode(gormLogger.Warn)
	}
	return gormLogger.Default.LogMode(gormLogger.Info)
}
