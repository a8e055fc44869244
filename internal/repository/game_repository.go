package repository

import (
	"context"

	"gorm.io/gorm"

	"dailyquest/internal/model"
)

// GameFilter narrows and pages catalog listings.
type GameFilter struct {
	Region          string
	Search          string
	Page            int
	Limit           int
	IncludeInactive bool
}

// GameRepository defines catalog persistence operations.
type GameRepository interface {
	Create(ctx context.Context, game *model.Game) error
	Update(ctx context.Context, game *model.Game) error
	FindByID(ctx context.Context, id uint) (*model.Game, error)
	FindBySlug(ctx context.Context, slug string) (*model.Game, error)
	List(ctx context.Context, filter GameFilter) ([]model.Game, int64, error)
	SoftDelete(ctx context.Context, id uint) error
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository builds a GORM-backed catalog repository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) Update(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

func (r *gameRepository) FindByID(ctx context.Context, id uint) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindBySlug(ctx context.Context, slug string) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// List returns a page of games plus the total match count.
func (r *gameRepository) List(ctx context.Context, filter GameFilter) ([]model.Game, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Game{})
	if !filter.IncludeInactive {
		query = query.Where("active = ?", true)
	}
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var games []model.Game
	if err := query.Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&games).Error; err != nil {
		return nil, 0, err
	}
	return games, total, nil
}

func (r *gameRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Game{}).Error
}
