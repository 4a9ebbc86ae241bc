package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/snake-api/internal/domain/entity"
	apperrors "github.com/yourusername/snake-api/internal/pkg/errors"
)

// leaderboardOrder - порядок лидерборда: очки, затем более свежие записи.
// id DESC разводит записи, вставленные в одну и ту же единицу времени.
const leaderboardOrder = "score DESC, created_at DESC, id DESC"

// ScoreRepo реализует repository.ScoreRepository поверх GORM.
// Работает одинаково с PostgreSQL и SQLite.
type ScoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo создает новый репозиторий результатов
func NewScoreRepo(db *gorm.DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// Create вставляет запись в одной транзакции и перечитывает ее,
// чтобы вернуть id и created_at, присвоенные базой. При ошибке транзакция откатывается.
func (r *ScoreRepo) Create(ctx context.Context, score *entity.Score) (*entity.Score, error) {
	row := entity.Score{
		PlayerName: score.PlayerName,
		Score:      score.Score,
		Level:      score.Level,
		PlayTime:   score.PlayTime,
	}

	var stored entity.Score
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("created_at").Create(&row).Error; err != nil {
			return err
		}
		return tx.First(&stored, row.ID).Error
	})
	if err != nil {
		return nil, apperrors.NewStorageError("create", err)
	}
	return &stored, nil
}

// List возвращает страницу лидерборда и общее количество записей в таблице.
// limit и offset не ограничиваются: их проверяет вызывающая сторона.
func (r *ScoreRepo) List(ctx context.Context, limit, offset int) ([]entity.Score, int64, error) {
	var scores []entity.Score
	var total int64

	// Используем транзакцию для согласованности страницы и общего количества
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Score{}).Count(&total).Error; err != nil {
			return err
		}
		return tx.Order(leaderboardOrder).
			Limit(limit).
			Offset(offset).
			Find(&scores).Error
	})
	if err != nil {
		return nil, 0, apperrors.NewStorageError("list", err)
	}
	if scores == nil {
		scores = []entity.Score{}
	}
	return scores, total, nil
}

// GetByID возвращает запись по первичному ключу или apperrors.ErrNotFound
func (r *ScoreRepo) GetByID(ctx context.Context, id int64) (*entity.Score, error) {
	var score entity.Score
	err := r.db.WithContext(ctx).First(&score, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("get", err)
	}
	return &score, nil
}
