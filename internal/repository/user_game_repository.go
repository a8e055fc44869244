package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailyquest/internal/model"
)

// UserGameRepository defines tracked-game persistence operations.
type UserGameRepository interface {
	Add(ctx context.Context, link *model.UserGame) error
	Remove(ctx context.Context, userID uuid.UUID, gameID uint) (int64, error)
	Exists(ctx context.Context, userID uuid.UUID, gameID uint) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserGame, error)
}

type userGameRepository struct {
	db *gorm.DB
}

// NewUserGameRepository builds a GORM-backed tracked-game repository.
func NewUserGameRepository(db *gorm.DB) UserGameRepository {
	return &userGameRepository{db: db}
}

func (r *userGameRepository) Add(ctx context.Context, link *model.UserGame) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// Remove deletes the link and returns the number of rows affected so callers
// can distinguish "untracked" from success.
func (r *userGameRepository) Remove(ctx context.Context, userID uuid.UUID, gameID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&model.UserGame{})
	return res.RowsAffected, res.Error
}

func (r *userGameRepository) Exists(ctx context.Context, userID uuid.UUID, gameID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserGame{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	return count > 0, err
}

func (r *userGameRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserGame, error) {
	var links []model.UserGame
	if err := r.db.WithContext(ctx).
		Preload("Game").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}
