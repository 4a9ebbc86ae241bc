package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migrateDatabase "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/yourusername/snake-api/internal/config"
	"github.com/yourusername/snake-api/migrations"
)

// SQLiteMigrationsTable - таблица версий golang-migrate
const SQLiteMigrationsTable = "schema_migrations"

// sqliteMigrationDriver реализует migrate database.Driver поверх уже открытого
// соединения glebarez/sqlite. Драйвер migrate/database/sqlite регистрирует
// modernc под тем же именем "sqlite" и не может жить в одном бинарнике с glebarez.
type sqliteMigrationDriver struct {
	db       *sql.DB
	isLocked atomic.Bool
}

// NewSQLiteMigrationDriver создает драйвер migrate и таблицу версий
func NewSQLiteMigrationDriver(db *sql.DB) (migrateDatabase.Driver, error) {
	if err := db.Ping(); err != nil {
		return nil, err
	}

	d := &sqliteMigrationDriver{db: db}
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (version uint64, dirty bool);
CREATE UNIQUE INDEX IF NOT EXISTS version_unique ON %s (version);`, SQLiteMigrationsTable, SQLiteMigrationsTable)
	if _, err := db.Exec(query); err != nil {
		return nil, &migrateDatabase.Error{OrigErr: err, Query: []byte(query)}
	}
	return d, nil
}

// NewSQLiteMigrator создает экземпляр migrate поверх встроенных миграций sqlite/
func NewSQLiteMigrator(driver migrateDatabase.Driver) (*migrateV4.Migrate, error) {
	src, err := iofs.New(migrations.FS, config.DriverSQLite)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть встроенные миграции: %w", err)
	}
	m, err := migrateV4.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать экземпляр migrate: %w", err)
	}
	return m, nil
}

func (d *sqliteMigrationDriver) Open(string) (migrateDatabase.Driver, error) {
	return nil, errors.New("sqlite migration driver works with an existing connection only")
}

func (d *sqliteMigrationDriver) Close() error {
	return d.db.Close()
}

func (d *sqliteMigrationDriver) Lock() error {
	if !d.isLocked.CompareAndSwap(false, true) {
		return migrateDatabase.ErrLocked
	}
	return nil
}

func (d *sqliteMigrationDriver) Unlock() error {
	if !d.isLocked.CompareAndSwap(true, false) {
		return migrateDatabase.ErrNotLocked
	}
	return nil
}

// Run выполняет файл миграции целиком в одной транзакции
func (d *sqliteMigrationDriver) Run(migration io.Reader) error {
	body, err := io.ReadAll(migration)
	if err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return &migrateDatabase.Error{OrigErr: err, Err: "transaction start failed"}
	}
	if _, err := tx.Exec(string(body)); err != nil {
		return &migrateDatabase.Error{OrigErr: multierr.Append(err, tx.Rollback()), Query: body}
	}
	if err := tx.Commit(); err != nil {
		return &migrateDatabase.Error{OrigErr: err, Err: "transaction commit failed"}
	}
	return nil
}

func (d *sqliteMigrationDriver) SetVersion(version int, dirty bool) error {
	tx, err := d.db.Begin()
	if err != nil {
		return &migrateDatabase.Error{OrigErr: err, Err: "transaction start failed"}
	}

	query := "DELETE FROM " + SQLiteMigrationsTable
	if _, err := tx.Exec(query); err != nil {
		return &migrateDatabase.Error{OrigErr: multierr.Append(err, tx.Rollback()), Query: []byte(query)}
	}

	// NilVersion с dirty тоже пишется, иначе упавший down первой миграции не виден
	if version >= 0 || (version == migrateDatabase.NilVersion && dirty) {
		query = "INSERT INTO " + SQLiteMigrationsTable + " (version, dirty) VALUES (?, ?)"
		if _, err := tx.Exec(query, version, dirty); err != nil {
			return &migrateDatabase.Error{OrigErr: multierr.Append(err, tx.Rollback()), Query: []byte(query)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &migrateDatabase.Error{OrigErr: err, Err: "transaction commit failed"}
	}
	return nil
}

func (d *sqliteMigrationDriver) Version() (int, bool, error) {
	var version int
	var dirty bool
	query := "SELECT version, dirty FROM " + SQLiteMigrationsTable + " LIMIT 1"
	err := d.db.QueryRow(query).Scan(&version, &dirty)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return migrateDatabase.NilVersion, false, nil
	case err != nil:
		return 0, false, &migrateDatabase.Error{OrigErr: err, Query: []byte(query)}
	}
	return version, dirty, nil
}

// Drop удаляет все пользовательские таблицы
func (d *sqliteMigrationDriver) Drop() error {
	query := "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'"
	rows, err := d.db.Query(query)
	if err != nil {
		return &migrateDatabase.Error{OrigErr: err, Query: []byte(query)}
	}

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		tables = append(tables, name)
	}
	if err := multierr.Append(rows.Err(), rows.Close()); err != nil {
		return &migrateDatabase.Error{OrigErr: err, Query: []byte(query)}
	}

	for _, name := range tables {
		drop := fmt.Sprintf("DROP TABLE %q", name)
		if _, err := d.db.Exec(drop); err != nil {
			return &migrateDatabase.Error{OrigErr: err, Query: []byte(drop)}
		}
	}
	return nil
}
