package repository

import (
	"context"

	"github.com/yourusername/snake-api/internal/domain/entity"
)

// ScoreRepository определяет методы для работы с результатами игр
type ScoreRepository interface {
	// Create вставляет запись и возвращает ее в том виде, в каком она сохранена (с id и created_at)
	Create(ctx context.Context, score *entity.Score) (*entity.Score, error)
	// List возвращает страницу лидерборда и общее количество записей в таблице
	List(ctx context.Context, limit, offset int) ([]entity.Score, int64, error)
	// GetByID возвращает apperrors.ErrNotFound, если записи нет
	GetByID(ctx context.Context, id int64) (*entity.Score, error)
}
