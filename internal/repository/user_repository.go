package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailyquest/internal/model"
)

// DependentCounts summarizes the rows that cascade away with a user deletion.
type DependentCounts struct {
	TrackedGames int64 `json:"tracked_games"`
	Completions  int64 `json:"completions"`
	Reminders    int64 `json:"reminders"`
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	UpdateColumns(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountDependents(ctx context.Context, id uuid.UUID) (DependentCounts, error)
	// WithTransaction runs fn against a repository bound to a single
	// transaction, rolling back if fn returns an error.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIdentifier looks a user up by username or email.
func (r *userRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateColumns applies a targeted column update; gorm bumps updated_at.
func (r *userRepository) UpdateColumns(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{}).Error
}

// CountDependents counts the cascade-linked rows for a user. Used for the
// pre-deletion audit summary only; the store's foreign keys do the removal.
func (r *userRepository) CountDependents(ctx context.Context, id uuid.UUID) (DependentCounts, error) {
	var counts DependentCounts
	if err := r.db.WithContext(ctx).Model(&model.UserGame{}).
		Where("user_id = ?", id).Count(&counts.TrackedGames).Error; err != nil {
		return counts, err
	}
	if err := r.db.WithContext(ctx).Model(&model.DailyCompletion{}).
		Where("user_id = ?", id).Count(&counts.Completions).Error; err != nil {
		return counts, err
	}
	if err := r.db.WithContext(ctx).Model(&model.ReminderSetting{}).
		Where("user_id = ?", id).Count(&counts.Reminders).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &userRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
