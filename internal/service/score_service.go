package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/snake-api/internal/domain/entity"
	"github.com/yourusername/snake-api/internal/domain/repository"
	"github.com/yourusername/snake-api/internal/metrics"
	apperrors "github.com/yourusername/snake-api/internal/pkg/errors"
	"github.com/yourusername/snake-api/pkg/logger"
)

// ScoreService предоставляет операции над результатами игр.
// Вся валидация выполняется здесь, до обращения к хранилищу.
type ScoreService struct {
	scoreRepo repository.ScoreRepository
	log       *logger.Logger
}

// LeaderboardPage - одна страница лидерборда
type LeaderboardPage struct {
	Scores []entity.Score
	Page   int
	Limit  int
	Total  int64
}

// NewScoreService создает новый сервис результатов
func NewScoreService(scoreRepo repository.ScoreRepository, log *logger.Logger) *ScoreService {
	return &ScoreService{
		scoreRepo: scoreRepo,
		log:       log,
	}
}

// SubmitScore валидирует вход, обрезает пробелы в имени и сохраняет запись
func (s *ScoreService) SubmitScore(ctx context.Context, in ScoreInput) (*entity.Score, error) {
	if fields := ValidateScoreInput(in); len(fields) > 0 {
		for _, f := range fields {
			metrics.ValidationFailuresTotal.WithLabelValues(f.Field).Inc()
		}
		return nil, &apperrors.ValidationError{Fields: fields}
	}

	stored, err := s.scoreRepo.Create(ctx, &entity.Score{
		PlayerName: strings.TrimSpace(*in.PlayerName),
		Score:      *in.Score,
		Level:      *in.Level,
		PlayTime:   *in.PlayTime,
	})
	if err != nil {
		s.storageFailure("create", err)
		return nil, err
	}

	metrics.ScoresSubmittedTotal.Inc()
	s.log.Info("Score submitted",
		zap.Int64("id", stored.ID),
		zap.String("player_name", stored.PlayerName),
		zap.Int("score", stored.Score),
		zap.Int("level", stored.Level),
	)
	return stored, nil
}

// GetLeaderboard возвращает страницу лидерборда. limit в [1, 100], offset >= 0.
func (s *ScoreService) GetLeaderboard(ctx context.Context, limit, offset int) (*LeaderboardPage, error) {
	return s.leaderboard(ctx, limit, offset, MaxLimit)
}

// GetExportPage работает как GetLeaderboard, но допускает limit до MaxExportLimit
func (s *ScoreService) GetExportPage(ctx context.Context, limit, offset int) (*LeaderboardPage, error) {
	return s.leaderboard(ctx, limit, offset, MaxExportLimit)
}

func (s *ScoreService) leaderboard(ctx context.Context, limit, offset, maxLimit int) (*LeaderboardPage, error) {
	if err := ValidatePagination(limit, offset, maxLimit); err != nil {
		return nil, err
	}

	scores, total, err := s.scoreRepo.List(ctx, limit, offset)
	if err != nil {
		s.storageFailure("list", err)
		return nil, err
	}

	return &LeaderboardPage{
		Scores: scores,
		Page:   PageNumber(limit, offset),
		Limit:  limit,
		Total:  total,
	}, nil
}

// GetScoreByID возвращает запись или apperrors.ErrNotFound
func (s *ScoreService) GetScoreByID(ctx context.Context, id int64) (*entity.Score, error) {
	score, err := s.scoreRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Штатный исход, не ошибка
			s.log.Debug("Score not found", zap.Int64("id", id))
			return nil, err
		}
		s.storageFailure("get", err)
		return nil, err
	}
	return score, nil
}

func (s *ScoreService) storageFailure(op string, err error) {
	metrics.StorageErrorsTotal.WithLabelValues(op).Inc()
	s.log.Error("[ScoreService] Ошибка хранилища", err, zap.String("op", op))
}
