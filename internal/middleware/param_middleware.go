package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/snake-api/internal/handler/dto"
	apperrors "github.com/yourusername/snake-api/internal/pkg/errors"
)

// ExtractIDParam создает middleware для извлечения целочисленного параметра URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым int64 будет сохранен в контексте Gin.
// Нечисловое значение - ошибка валидации (422).
func ExtractIDParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(
				dto.CodeValidation,
				"Invalid "+paramName,
				apperrors.FieldError{Field: paramName, Reason: "must be an integer"},
			))
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}
