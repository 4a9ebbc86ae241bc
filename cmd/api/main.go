package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/snake-api/internal/config"
	"github.com/yourusername/snake-api/internal/handler"
	pgRepo "github.com/yourusername/snake-api/internal/repository/postgres"
	"github.com/yourusername/snake-api/internal/service"
	"github.com/yourusername/snake-api/pkg/database"
	"github.com/yourusername/snake-api/pkg/logger"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.Server.Mode)

	appLog, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Log.Environment,
		ServiceName: "snake-api",
	})
	if err != nil {
		log.Printf("Failed to init logger: %v", err)
		os.Exit(1)
	}
	defer appLog.Sync()

	// Подключаемся к БД (SQLite по умолчанию, PostgreSQL по DATABASE_DRIVER)
	db, err := database.Open(cfg.Database, cfg.IsProduction())
	if err != nil {
		appLog.Error("Failed to connect to database", err, zap.String("driver", cfg.Database.Driver))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		appLog.Error("Failed to get sql.DB", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.Driver, appLog); err != nil {
		appLog.Error("Failed to migrate database", err)
		os.Exit(1)
	}

	// Репозитории, сервисы, обработчики
	scoreRepo := pgRepo.NewScoreRepo(db)
	scoreService := service.NewScoreService(scoreRepo, appLog)

	scoreHandler := handler.NewScoreHandler(scoreService)
	exportHandler := handler.NewExportHandler(scoreHandler, appLog)
	systemHandler := handler.NewSystemHandler(sqlDB, appLog)

	deps := handler.RouterDeps{
		Scores: scoreHandler,
		Export: exportHandler,
		System: systemHandler,
		Log:    appLog,
	}
	if cfg.Metrics.Enabled {
		deps.MetricsPath = cfg.Metrics.Path
	}
	router := handler.NewRouter(deps)

	// В production не доверяем прокси-заголовкам
	if cfg.IsProduction() {
		if err := router.SetTrustedProxies(nil); err != nil {
			appLog.Warn("failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		appLog.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("driver", cfg.Database.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("Failed to start server", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", err)
	}

	if err := sqlDB.Close(); err != nil {
		appLog.Error("Error closing database", err)
	}

	appLog.Info("Server exited properly")
}
