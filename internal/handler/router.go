package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourusername/snake-api/internal/handler/dto"
	"github.com/yourusername/snake-api/internal/middleware"
	"github.com/yourusername/snake-api/pkg/logger"
)

// RouterDeps - зависимости для сборки роутера
type RouterDeps struct {
	Scores      *ScoreHandler
	Export      *ExportHandler
	System      *SystemHandler
	Log         *logger.Logger
	MetricsPath string // пусто - /metrics не регистрируется
}

// NewRouter собирает gin.Engine со всеми маршрутами API
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.Metrics())

	// Доступ не ограничивается: любые origin, методы и заголовки
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.CodeNotFound, "Route not found"))
	})

	router.GET("/", deps.System.Root)
	router.GET("/healthz", deps.System.Health)
	if deps.MetricsPath != "" {
		router.GET(deps.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api/v1")
	{
		scores := api.Group("/scores")
		{
			scores.POST("", deps.Scores.SubmitScore)
			scores.GET("", deps.Scores.GetLeaderboard)
			scores.GET("/export", deps.Export.ExportScores)
			scores.GET("/:id", middleware.ExtractIDParam("id", "scoreID"), deps.Scores.GetScore)
		}
	}

	return router
}
