package dto

import (
	"time"

	"github.com/yourusername/snake-api/internal/domain/entity"
	apperrors "github.com/yourusername/snake-api/internal/pkg/errors"
)

// Коды ошибок в конверте ответа
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidParams = "INVALID_PARAMETERS"
	CodeNotFound      = "NOT_FOUND"
	CodeInternal      = "INTERNAL_ERROR"
)

// SubmitScoreRequest - тело POST /api/v1/scores. Указатели отличают "не передано" от нуля.
type SubmitScoreRequest struct {
	PlayerName *string `json:"player_name"`
	Score      *int    `json:"score"`
	Level      *int    `json:"level"`
	PlayTime   *int    `json:"play_time"` // секунды
}

// ScoreDTO - запись результата в ответе
type ScoreDTO struct {
	ID         int64     `json:"id"`
	PlayerName string    `json:"player_name"`
	Score      int       `json:"score"`
	Level      int       `json:"level"`
	PlayTime   int       `json:"play_time"`
	CreatedAt  time.Time `json:"created_at"`
}

// PaginationDTO описывает окно страницы относительно всего лидерборда
type PaginationDTO struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ScoreResponse - конверт ответа с одной записью
type ScoreResponse struct {
	Success bool     `json:"success"`
	Data    ScoreDTO `json:"data"`
}

// ScoreListResponse - конверт ответа лидерборда
type ScoreListResponse struct {
	Success    bool          `json:"success"`
	Data       []ScoreDTO    `json:"data"`
	Pagination PaginationDTO `json:"pagination"`
}

// ErrorDetail - тело ошибки
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

// ErrorResponse - конверт ответа с ошибкой
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewScoreDTO преобразует сущность в DTO
func NewScoreDTO(s *entity.Score) ScoreDTO {
	return ScoreDTO{
		ID:         s.ID,
		PlayerName: s.PlayerName,
		Score:      s.Score,
		Level:      s.Level,
		PlayTime:   s.PlayTime,
		CreatedAt:  s.CreatedAt,
	}
}

// NewScoreResponse оборачивает одну запись в конверт
func NewScoreResponse(s *entity.Score) ScoreResponse {
	return ScoreResponse{Success: true, Data: NewScoreDTO(s)}
}

// NewScoreListResponse оборачивает страницу лидерборда в конверт
func NewScoreListResponse(scores []entity.Score, page, limit int, total int64) ScoreListResponse {
	data := make([]ScoreDTO, len(scores))
	for i := range scores {
		data[i] = NewScoreDTO(&scores[i])
	}
	return ScoreListResponse{
		Success:    true,
		Data:       data,
		Pagination: PaginationDTO{Page: page, Limit: limit, Total: total},
	}
}

// NewErrorResponse создает конверт ошибки
func NewErrorResponse(code, message string, details ...apperrors.FieldError) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
