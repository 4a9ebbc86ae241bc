package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/snake-api/internal/handler/dto"
	apperrors "github.com/yourusername/snake-api/internal/pkg/errors"
	"github.com/yourusername/snake-api/internal/service"
)

// ScoreHandler обрабатывает запросы, связанные с результатами игр
type ScoreHandler struct {
	scoreService *service.ScoreService
}

// NewScoreHandler создает новый обработчик результатов
func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
	}
}

// SubmitScore обрабатывает отправку результата
// POST /api/v1/scores
func (h *ScoreHandler) SubmitScore(c *gin.Context) {
	var req dto.SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleScoreError(c, bindError(err))
		return
	}

	score, err := h.scoreService.SubmitScore(c.Request.Context(), service.ScoreInput{
		PlayerName: req.PlayerName,
		Score:      req.Score,
		Level:      req.Level,
		PlayTime:   req.PlayTime,
	})
	if err != nil {
		h.handleScoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewScoreResponse(score))
}

// GetLeaderboard возвращает страницу лидерборда
// GET /api/v1/scores?limit=10&offset=0
func (h *ScoreHandler) GetLeaderboard(c *gin.Context) {
	limit, offset, err := parsePagination(c)
	if err != nil {
		h.handleScoreError(c, err)
		return
	}

	page, err := h.scoreService.GetLeaderboard(c.Request.Context(), limit, offset)
	if err != nil {
		h.handleScoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewScoreListResponse(page.Scores, page.Page, page.Limit, page.Total))
}

// GetScore возвращает одну запись по id
// GET /api/v1/scores/:id
func (h *ScoreHandler) GetScore(c *gin.Context) {
	scoreID := c.MustGet("scoreID").(int64) // Получаем из контекста

	score, err := h.scoreService.GetScoreByID(c.Request.Context(), scoreID)
	if err != nil {
		h.handleScoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewScoreResponse(score))
}

// parsePagination читает limit и offset из query. Нечисловые значения - ошибка параметров.
func parsePagination(c *gin.Context) (int, int, error) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultLimit)))
	if err != nil {
		return 0, 0, &apperrors.ParamError{Param: "limit", Reason: "must be an integer"}
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		return 0, 0, &apperrors.ParamError{Param: "offset", Reason: "must be an integer"}
	}
	return limit, offset, nil
}

// bindError превращает ошибку разбора JSON в ошибку валидации
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.NewValidationError(typeErr.Field, "must be of type "+typeErr.Type.String())
	}
	return apperrors.NewValidationError("body", "invalid JSON body")
}

// handleScoreError отображает ошибки сервиса в HTTP-статусы и конверт ошибки.
// Причина ошибок хранилища не попадает в ответ.
func (h *ScoreHandler) handleScoreError(c *gin.Context, err error) {
	var vErr *apperrors.ValidationError
	var pErr *apperrors.ParamError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(dto.CodeValidation, "Validation failed", vErr.Fields...))
	case errors.As(err, &pErr):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.CodeInvalidParams, pErr.Error()))
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.CodeNotFound, "Score not found"))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.CodeInternal, "Internal server error"))
	}
}
