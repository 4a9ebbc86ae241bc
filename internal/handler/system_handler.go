package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/snake-api/pkg/logger"
)

// Version - версия API, отдаваемая в метаданных
const Version = "1.0.0"

// Pinger проверяет доступность хранилища (реализуется *sql.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler отдает метаданные сервиса и состояние готовности
type SystemHandler struct {
	db  Pinger
	log *logger.Logger
}

// NewSystemHandler создает обработчик служебных маршрутов
func NewSystemHandler(db Pinger, log *logger.Logger) *SystemHandler {
	return &SystemHandler{db: db, log: log}
}

// Root возвращает название, версию и список эндпоинтов
// GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Snake Fantasy API",
		"version": Version,
		"endpoints": gin.H{
			"POST /api/v1/scores":       "Submit a game score",
			"GET /api/v1/scores":        "Get the leaderboard",
			"GET /api/v1/scores/{id}":   "Get a single score",
			"GET /api/v1/scores/export": "Export the leaderboard as CSV or XLSX",
		},
	})
}

// Health проверяет подключение к БД
// GET /healthz
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Error("[SystemHandler] База данных недоступна", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
