package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Поддерживаемые драйверы БД
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // секунды
	WriteTimeout int    `mapstructure:"write_timeout"` // секунды
	Mode         string `mapstructure:"mode"`          // debug, release, test
}

// DatabaseConfig содержит настройки подключения к БД.
// Driver выбирает между SQLite (файл Path) и PostgreSQL (Host/Port/...).
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	Path         string `mapstructure:"path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// LogConfig содержит настройки логгера
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Environment string `mapstructure:"environment"` // development или production
}

// MetricsConfig содержит настройки экспорта метрик Prometheus
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// IsProduction сообщает, запущен ли сервис в production-окружении
func (c *Config) IsProduction() bool {
	return c.Log.Environment == "production" || c.Server.Mode == "release"
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8005")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 10)
	vip.SetDefault("server.mode", "debug")

	vip.SetDefault("database.driver", DriverSQLite)
	vip.SetDefault("database.path", "snake_game.db")
	vip.SetDefault("database.host", "localhost")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.max_open_conns", 25)
	vip.SetDefault("database.max_idle_conns", 10)

	vip.SetDefault("log.level", "info")
	vip.SetDefault("log.environment", "development")

	vip.SetDefault("metrics.enabled", true)
	vip.SetDefault("metrics.path", "/metrics")
}

func bindEnv(vip *viper.Viper) {
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	vip.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	vip.BindEnv("server.mode", "GIN_MODE")

	vip.BindEnv("database.driver", "DATABASE_DRIVER")
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.path", "DATABASE_PATH")
	vip.BindEnv("database.max_open_conns", "DATABASE_MAX_OPEN_CONNS")
	vip.BindEnv("database.max_idle_conns", "DATABASE_MAX_IDLE_CONNS")

	vip.BindEnv("log.level", "LOG_LEVEL")
	vip.BindEnv("log.environment", "APP_ENV")

	vip.BindEnv("metrics.enabled", "METRICS_ENABLED")
	vip.BindEnv("metrics.path", "METRICS_PATH")
}

// Load загружает конфигурацию: .env, затем YAML-файл, затем переменные окружения.
// Пустой configPath означает "только окружение и умолчания".
func Load(configPath string) (*Config, error) {
	// .env не обязателен: в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Предупреждение: не удалось прочитать .env: %v", err)
	}

	vip := viper.New() // Отдельный экземпляр, без глобального состояния
	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite driver (check DATABASE_PATH env var)")
		}
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
		if c.Server.Mode != "debug" && c.Server.Mode != "test" && c.Database.Password == "" {
			return fmt.Errorf("database password is required in %s mode (check DATABASE_PASSWORD env var)", c.Server.Mode)
		}
	default:
		return fmt.Errorf("unsupported database driver %q (expected %q or %q)", c.Database.Driver, DriverSQLite, DriverPostgres)
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required (check SERVER_PORT env var)")
	}
	return nil
}
