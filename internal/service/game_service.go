package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"gorm.io/gorm"

	"dailyquest/internal/cache"
	apperrors "dailyquest/internal/errors"
	"dailyquest/internal/model"
	"dailyquest/internal/repository"
	"dailyquest/internal/timezone"
)

const gameListCacheTTL = 5 * time.Minute

var (
	slugPattern      = regexp.MustCompile(`^[a-z0-9-]+$`)
	resetTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// GameInput carries catalog fields for create and update.
type GameInput struct {
	Name      string
	Slug      string
	Region    string
	Timezone  string
	ResetTime string
	Active    *bool
}

// GamePage is one page of catalog results.
type GamePage struct {
	Games []model.Game `json:"games"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// ResetInfo describes a game's next daily reset.
type ResetInfo struct {
	GameID    uint      `json:"game_id"`
	Timezone  string    `json:"timezone"`
	ResetTime string    `json:"reset_time"`
	NextReset time.Time `json:"next_reset"`
	In        string    `json:"in"`
}

// GameService handles catalog reads and admin curation.
type GameService interface {
	ListGames(ctx context.Context, filter repository.GameFilter) (*GamePage, error)
	GetGame(ctx context.Context, id uint) (*model.Game, error)
	NextReset(ctx context.Context, id uint) (*ResetInfo, error)
	CreateGame(ctx context.Context, actorUsername string, input GameInput) (*model.Game, error)
	UpdateGame(ctx context.Context, actorUsername string, id uint, input GameInput) (*model.Game, error)
	DeleteGame(ctx context.Context, actorUsername string, id uint) error
}

type gameService struct {
	games     repository.GameRepository
	cache     *cache.Client
	timezones *timezone.Service
	now       func() time.Time
}

// NewGameService creates a new game catalog service.
func NewGameService(games repository.GameRepository, cache *cache.Client, timezones *timezone.Service) GameService {
	return &gameService{
		games:     games,
		cache:     cache,
		timezones: timezones,
		now:       time.Now,
	}
}

func listCacheKey(f repository.GameFilter) string {
	return fmt.Sprintf("games:list:%s:%s:%d:%d:%t", f.Region, f.Search, f.Page, f.Limit, f.IncludeInactive)
}

// ListGames returns a filtered catalog page, cache-aside through redis.
func (s *gameService) ListGames(ctx context.Context, filter repository.GameFilter) (*GamePage, error) {
	key := listCacheKey(filter)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached GamePage
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	games, total, err := s.games.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	result := &GamePage{Games: games, Total: total, Page: page, Limit: limit}

	if payload, err := json.Marshal(result); err == nil {
		_ = s.cache.Set(ctx, key, payload, gameListCacheTTL)
	}
	return result, nil
}

func (s *gameService) GetGame(ctx context.Context, id uint) (*model.Game, error) {
	game, err := s.games.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}
	return game, nil
}

// NextReset computes the next daily reset instant for a game.
func (s *gameService) NextReset(ctx context.Context, id uint) (*ResetInfo, error) {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	next, err := timezone.NextReset(game.Timezone, game.ResetTime, now)
	if err != nil {
		return nil, fmt.Errorf("compute reset: %w", err)
	}

	return &ResetInfo{
		GameID:    game.ID,
		Timezone:  game.Timezone,
		ResetTime: game.ResetTime,
		NextReset: next,
		In:        next.Sub(now).Truncate(time.Second).String(),
	}, nil
}

// CreateGame adds a catalog entry.
func (s *gameService) CreateGame(ctx context.Context, actorUsername string, input GameInput) (*model.Game, error) {
	if err := validateGameInput(s.timezones, &input, false); err != nil {
		return nil, err
	}

	game := &model.Game{
		Name:      input.Name,
		Slug:      input.Slug,
		Region:    input.Region,
		Timezone:  s.timezones.Normalize(input.Timezone),
		ResetTime: input.ResetTime,
		Active:    true,
	}
	if input.Active != nil {
		game.Active = *input.Active
	}

	if err := s.games.Create(ctx, game); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrGameSlugTaken
		}
		return nil, fmt.Errorf("create game: %w", err)
	}

	s.invalidateListings(ctx)
	log.Printf("audit: game created slug=%s by=%s", game.Slug, actorUsername)
	return game, nil
}

// UpdateGame patches the provided catalog fields.
func (s *gameService) UpdateGame(ctx context.Context, actorUsername string, id uint, input GameInput) (*model.Game, error) {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateGameInput(s.timezones, &input, true); err != nil {
		return nil, err
	}

	if input.Name != "" {
		game.Name = input.Name
	}
	if input.Slug != "" {
		game.Slug = input.Slug
	}
	if input.Region != "" {
		game.Region = input.Region
	}
	if input.Timezone != "" {
		game.Timezone = s.timezones.Normalize(input.Timezone)
	}
	if input.ResetTime != "" {
		game.ResetTime = input.ResetTime
	}
	if input.Active != nil {
		game.Active = *input.Active
	}

	if err := s.games.Update(ctx, game); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrGameSlugTaken
		}
		return nil, fmt.Errorf("update game: %w", err)
	}

	s.invalidateListings(ctx)
	log.Printf("audit: game updated slug=%s by=%s", game.Slug, actorUsername)
	return game, nil
}

// DeleteGame soft-deletes a catalog entry; completion history keeps its rows.
func (s *gameService) DeleteGame(ctx context.Context, actorUsername string, id uint) error {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return err
	}
	if err := s.games.SoftDelete(ctx, game.ID); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}

	s.invalidateListings(ctx)
	log.Printf("audit: game deleted slug=%s by=%s", game.Slug, actorUsername)
	return nil
}

func (s *gameService) invalidateListings(ctx context.Context) {
	_ = s.cache.DeletePattern(ctx, "games:list:*")
}

func validateGameInput(timezones *timezone.Service, input *GameInput, partial bool) error {
	if input.Name == "" && !partial {
		return apperrors.NewValidationError("name is required")
	}
	if len(input.Name) > 255 {
		return apperrors.NewValidationError("name must be at most 255 characters")
	}
	if input.Slug == "" && !partial {
		return apperrors.NewValidationError("slug is required")
	}
	if input.Slug != "" && (len(input.Slug) > 100 || !slugPattern.MatchString(input.Slug)) {
		return apperrors.NewValidationError("slug may only contain lowercase letters, digits and hyphens")
	}
	if len(input.Region) > 50 {
		return apperrors.NewValidationError("region must be at most 50 characters")
	}
	if input.Timezone == "" && !partial {
		return apperrors.NewValidationError("timezone is required")
	}
	if input.Timezone != "" && !timezones.IsValid(input.Timezone) {
		return apperrors.ErrInvalidTimezone
	}
	if input.ResetTime == "" && !partial {
		return apperrors.NewValidationError("reset_time is required")
	}
	if input.ResetTime != "" && !resetTimePattern.MatchString(input.ResetTime) {
		return apperrors.NewValidationError("reset_time must be HH:MM in 24-hour format")
	}
	return nil
}
