package service

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yourusername/snake-api/internal/domain/entity"
	apperrors "github.com/yourusername/snake-api/internal/pkg/errors"
)

// Границы пагинации лидерборда
const (
	DefaultLimit   = 10
	MaxLimit       = 100
	MaxExportLimit = 1000
)

// ScoreInput - входные данные отправки результата. nil означает, что поле не передано.
type ScoreInput struct {
	PlayerName *string
	Score      *int
	Level      *int
	PlayTime   *int
}

// ValidateScoreInput проверяет поля по порядку и останавливается на первом нарушении.
// Возвращает пустой список, если вход корректен.
func ValidateScoreInput(in ScoreInput) []apperrors.FieldError {
	switch {
	case in.PlayerName == nil:
		return fieldError("player_name", "field required")
	case strings.TrimSpace(*in.PlayerName) == "":
		return fieldError("player_name", "must not be empty")
	case utf8.RuneCountInString(strings.TrimSpace(*in.PlayerName)) > entity.MaxPlayerNameLength:
		return fieldError("player_name", "must be at most 50 characters")
	case in.Score == nil:
		return fieldError("score", "field required")
	case *in.Score < 0:
		return fieldError("score", "must be greater than or equal to 0")
	case in.Level == nil:
		return fieldError("level", "field required")
	case *in.Level < entity.MinLevel || *in.Level > entity.MaxLevel:
		return fieldError("level", "must be between 1 and 5")
	case in.PlayTime == nil:
		return fieldError("play_time", "field required")
	case *in.PlayTime < 0:
		return fieldError("play_time", "must be greater than or equal to 0")
	}
	return nil
}

func fieldError(field, reason string) []apperrors.FieldError {
	return []apperrors.FieldError{{Field: field, Reason: reason}}
}

// ValidatePagination проверяет limit в [1, maxLimit] и offset >= 0. Значения не подрезаются.
func ValidatePagination(limit, offset, maxLimit int) error {
	if limit < 1 || limit > maxLimit {
		return &apperrors.ParamError{Param: "limit", Reason: "must be between 1 and " + strconv.Itoa(maxLimit)}
	}
	if offset < 0 {
		return &apperrors.ParamError{Param: "offset", Reason: "must be greater than or equal to 0"}
	}
	return nil
}

// PageNumber возвращает номер страницы (с единицы) для окна limit/offset
func PageNumber(limit, offset int) int {
	if limit <= 0 {
		return 1
	}
	return offset/limit + 1
}
