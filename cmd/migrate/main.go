package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"

	"github.com/yourusername/snake-api/internal/config"
	"github.com/yourusername/snake-api/pkg/database"
)

const usage = `usage: migrate [-config path] <command>

commands:
  up         apply all pending migrations
  down       roll back one migration
  version    print the current version
  force N    set version N and clear the dirty flag`

// Ручное управление миграциями. Драйвер БД берется из конфигурации.
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	m, closeDB, err := newMigrator(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer closeDB()

	switch flag.Arg(0) {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
		version, dirty, vErr := m.Version()
		if errors.Is(vErr, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return
		}
		if vErr != nil {
			log.Fatalf("Failed to read version: %v", vErr)
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return
	case "force":
		if flag.NArg() < 2 {
			log.Fatal("force requires a version number")
		}
		version, convErr := strconv.Atoi(flag.Arg(1))
		if convErr != nil {
			log.Fatalf("invalid version %q: %v", flag.Arg(1), convErr)
		}
		fmt.Printf("Forcing migration version to %d to clean dirty state...\n", version)
		err = m.Force(version)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Migration %s failed: %v", flag.Arg(0), err)
	}
	fmt.Println("Success!")
}

// newMigrator открывает БД выбранного драйвера и создает экземпляр migrate
func newMigrator(cfg config.DatabaseConfig) (*migrate.Migrate, func() error, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.PostgresConnectionString())
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}
		driver, err := postgres.WithInstance(db, &postgres.Config{})
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		m, err := database.NewPostgresMigrator(driver)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return m, db.Close, nil

	case config.DriverSQLite:
		gormDB, err := database.NewSQLiteDB(cfg.Path, true)
		if err != nil {
			return nil, nil, err
		}
		db, err := gormDB.DB()
		if err != nil {
			return nil, nil, err
		}
		driver, err := database.NewSQLiteMigrationDriver(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		m, err := database.NewSQLiteMigrator(driver)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return m, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
