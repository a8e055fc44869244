package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailyquest/internal/model"
)

// CompletionRepository defines daily-completion persistence operations.
type CompletionRepository interface {
	Create(ctx context.Context, completion *model.DailyCompletion) error
	FindForDay(ctx context.Context, userID uuid.UUID, gameID uint, day string) (*model.DailyCompletion, error)
	ListForDay(ctx context.Context, userID uuid.UUID, day string) ([]model.DailyCompletion, error)
}

type completionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository builds a GORM-backed completion repository.
func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) Create(ctx context.Context, completion *model.DailyCompletion) error {
	return r.db.WithContext(ctx).Create(completion).Error
}

func (r *completionRepository) FindForDay(ctx context.Context, userID uuid.UUID, gameID uint, day string) (*model.DailyCompletion, error) {
	var completion model.DailyCompletion
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ? AND completed_on = ?", userID, gameID, day).
		First(&completion).Error; err != nil {
		return nil, err
	}
	return &completion, nil
}

func (r *completionRepository) ListForDay(ctx context.Context, userID uuid.UUID, day string) ([]model.DailyCompletion, error) {
	var completions []model.DailyCompletion
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed_on = ?", userID, day).
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}
