package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailyquest/internal/model"
)

// ReminderRepository defines reminder-setting persistence operations.
type ReminderRepository interface {
	Upsert(ctx context.Context, setting *model.ReminderSetting) error
	FindByUserAndGame(ctx context.Context, userID uuid.UUID, gameID uint) (*model.ReminderSetting, error)
}

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository builds a GORM-backed reminder repository.
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

// Upsert creates the setting or updates the existing row for the pair.
func (r *reminderRepository) Upsert(ctx context.Context, setting *model.ReminderSetting) error {
	var existing model.ReminderSetting
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", setting.UserID, setting.GameID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(setting).Error
	}
	if err != nil {
		return err
	}

	setting.ID = existing.ID
	setting.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(setting).Error
}

func (r *reminderRepository) FindByUserAndGame(ctx context.Context, userID uuid.UUID, gameID uint) (*model.ReminderSetting, error) {
	var setting model.ReminderSetting
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
