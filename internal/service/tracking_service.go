package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "dailyquest/internal/errors"
	"dailyquest/internal/model"
	"dailyquest/internal/repository"
)

// TrackingService handles a user's selected games, daily completions and
// reminder settings.
type TrackingService interface {
	TrackGame(ctx context.Context, userID uuid.UUID, gameID uint) (*model.UserGame, error)
	UntrackGame(ctx context.Context, userID uuid.UUID, gameID uint) error
	ListTracked(ctx context.Context, userID uuid.UUID) ([]model.UserGame, error)
	CompleteToday(ctx context.Context, userID uuid.UUID, gameID uint) (*model.DailyCompletion, bool, error)
	ListToday(ctx context.Context, userID uuid.UUID) ([]model.DailyCompletion, error)
	SetReminder(ctx context.Context, userID uuid.UUID, gameID uint, enabled bool, minutesBefore int) (*model.ReminderSetting, error)
}

type trackingService struct {
	users       repository.UserRepository
	games       repository.GameRepository
	userGames   repository.UserGameRepository
	completions repository.CompletionRepository
	reminders   repository.ReminderRepository
	now         func() time.Time
}

// NewTrackingService creates a new tracking service.
func NewTrackingService(
	users repository.UserRepository,
	games repository.GameRepository,
	userGames repository.UserGameRepository,
	completions repository.CompletionRepository,
	reminders repository.ReminderRepository,
) TrackingService {
	return &trackingService{
		users:       users,
		games:       games,
		userGames:   userGames,
		completions: completions,
		reminders:   reminders,
		now:         time.Now,
	}
}

// TrackGame adds a game to the user's tracked set. Tracking an already
// tracked game is a no-op returning the existing link.
func (s *trackingService) TrackGame(ctx context.Context, userID uuid.UUID, gameID uint) (*model.UserGame, error) {
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}

	link := &model.UserGame{UserID: userID, GameID: game.ID}
	if err := s.userGames.Add(ctx, link); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("track game: %w", err)
		}
	}
	link.Game = game
	return link, nil
}

func (s *trackingService) UntrackGame(ctx context.Context, userID uuid.UUID, gameID uint) error {
	affected, err := s.userGames.Remove(ctx, userID, gameID)
	if err != nil {
		return fmt.Errorf("untrack game: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrGameNotTracked
	}
	return nil
}

func (s *trackingService) ListTracked(ctx context.Context, userID uuid.UUID) ([]model.UserGame, error) {
	return s.userGames.ListByUser(ctx, userID)
}

// CompleteToday marks a tracked game's dailies done for the current day in
// the user's timezone. The second return reports whether a new row was
// written; repeating the call on the same day is idempotent.
func (s *trackingService) CompleteToday(ctx context.Context, userID uuid.UUID, gameID uint) (*model.DailyCompletion, bool, error) {
	tracked, err := s.userGames.Exists(ctx, userID, gameID)
	if err != nil {
		return nil, false, fmt.Errorf("check tracking: %w", err)
	}
	if !tracked {
		return nil, false, apperrors.ErrGameNotTracked
	}

	day, err := s.localDay(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	completion := &model.DailyCompletion{UserID: userID, GameID: gameID, CompletedOn: day}
	if err := s.completions.Create(ctx, completion); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := s.completions.FindForDay(ctx, userID, gameID, day)
			if findErr != nil {
				return nil, false, fmt.Errorf("find completion: %w", findErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("record completion: %w", err)
	}
	return completion, true, nil
}

func (s *trackingService) ListToday(ctx context.Context, userID uuid.UUID) ([]model.DailyCompletion, error) {
	day, err := s.localDay(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.completions.ListForDay(ctx, userID, day)
}

// SetReminder upserts the reminder configuration for a tracked game.
func (s *trackingService) SetReminder(ctx context.Context, userID uuid.UUID, gameID uint, enabled bool, minutesBefore int) (*model.ReminderSetting, error) {
	if minutesBefore < 0 || minutesBefore > 24*60 {
		return nil, apperrors.NewValidationError("minutes_before must be between 0 and 1440")
	}

	tracked, err := s.userGames.Exists(ctx, userID, gameID)
	if err != nil {
		return nil, fmt.Errorf("check tracking: %w", err)
	}
	if !tracked {
		return nil, apperrors.ErrGameNotTracked
	}

	setting := &model.ReminderSetting{
		UserID:        userID,
		GameID:        gameID,
		Enabled:       enabled,
		MinutesBefore: minutesBefore,
	}
	if err := s.reminders.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("save reminder: %w", err)
	}
	return setting, nil
}

// localDay formats the current day in the user's timezone.
func (s *trackingService) localDay(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return s.now().In(loc).Format("2006-01-02"), nil
}
