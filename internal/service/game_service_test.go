package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "dailyquest/internal/errors"
	"dailyquest/internal/model"
	"dailyquest/internal/repository"
	"dailyquest/internal/timezone"
)

func newGameService(games repository.GameRepository) *gameService {
	return &gameService{
		games:     games,
		cache:     nil, // nil client behaves like a permanent cache miss
		timezones: timezone.NewService("UTC"),
		now:       time.Now,
	}
}

func validGameInput() GameInput {
	return GameInput{
		Name:      "Genshin Impact",
		Slug:      "genshin-impact",
		Region:    "global",
		Timezone:  "America/New_York",
		ResetTime: "04:00",
	}
}

func TestGameService_ListGames(t *testing.T) {
	games := new(MockGameRepository)
	svc := newGameService(games)

	filter := repository.GameFilter{Region: "global", Page: 2, Limit: 10}
	games.On("List", mock.Anything, filter).Return([]model.Game{{Name: "Genshin Impact"}}, int64(11), nil)

	page, err := svc.ListGames(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(11), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Len(t, page.Games, 1)
}

func TestGameService_ListGames_DefaultsPaging(t *testing.T) {
	games := new(MockGameRepository)
	svc := newGameService(games)

	filter := repository.GameFilter{Page: 0, Limit: 500}
	games.On("List", mock.Anything, filter).Return([]model.Game{}, int64(0), nil)

	page, err := svc.ListGames(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
}

func TestGameService_GetGame_NotFound(t *testing.T) {
	games := new(MockGameRepository)
	svc := newGameService(games)

	games.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetGame(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrGameNotFound)
}

func TestGameService_NextReset(t *testing.T) {
	games := new(MockGameRepository)
	svc := newGameService(games)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	}

	games.On("FindByID", mock.Anything, uint(1)).Return(&model.Game{
		ID:        1,
		Timezone:  "UTC",
		ResetTime: "17:30",
	}, nil)

	info, err := svc.NextReset(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC), info.NextReset)
	assert.Equal(t, "7h30m0s", info.In)
	assert.Equal(t, "17:30", info.ResetTime)
}

func TestGameService_CreateGame(t *testing.T) {
	games := new(MockGameRepository)
	svc := newGameService(games)

	games.On("Create", mock.Anything, mock.AnythingOfType("*model.Game")).Return(nil)

	game, err := svc.CreateGame(context.Background(), "boss", validGameInput())
	require.NoError(t, err)
	assert.Equal(t, "genshin-impact", game.Slug)
	assert.True(t, game.Active)
	games.AssertExpectations(t)
}

func TestGameService_CreateGame_NormalizesTimezoneAlias(t *testing.T) {
	games := new(MockGameRepository)
	svc := newGameService(games)

	games.On("Create", mock.Anything, mock.AnythingOfType("*model.Game")).Return(nil)

	input := validGameInput()
	input.Timezone = "JST"

	game, err := svc.CreateGame(context.Background(), "boss", input)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", game.Timezone)
}

func TestGameService_CreateGame_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameInput)
		want   error
	}{
		{"missing name", func(in *GameInput) { in.Name = "" }, nil},
		{"bad slug", func(in *GameInput) { in.Slug = "Genshin Impact!" }, nil},
		{"bad timezone", func(in *GameInput) { in.Timezone = "Mars/Olympus" }, apperrors.ErrInvalidTimezone},
		{"bad reset time", func(in *GameInput) { in.ResetTime = "25:99" }, nil},
		{"twelve hour reset time", func(in *GameInput) { in.ResetTime = "4:00" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games := new(MockGameRepository)
			svc := newGameService(games)

			input := validGameInput()
			tt.mutate(&input)

			_, err := svc.CreateGame(context.Background(), "boss", input)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			games.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestGameService_CreateGame_SlugTaken(t *testing.T) {
	games := new(MockGameRepository)
	svc := newGameService(games)

	games.On("Create", mock.Anything, mock.AnythingOfType("*model.Game")).Return(gorm.ErrDuplicatedKey)

	_, err := svc.CreateGame(context.Background(), "boss", validGameInput())
	assert.ErrorIs(t, err, apperrors.ErrGameSlugTaken)
}

func TestGameService_UpdateGame_PartialPatch(t *testing.T) {
	games := new(MockGameRepository)
	svc := newGameService(games)

	existing := &model.Game{
		ID:        1,
		Name:      "Genshin Impact",
		Slug:      "genshin-impact",
		Timezone:  "America/New_York",
		ResetTime: "04:00",
		Active:    true,
	}
	games.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
	games.On("Update", mock.Anything, mock.AnythingOfType("*model.Game")).Return(nil)

	inactive := false
	game, err := svc.UpdateGame(context.Background(), "boss", 1, GameInput{
		ResetTime: "05:00",
		Active:    &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "05:00", game.ResetTime)
	assert.False(t, game.Active)
	// Untouched fields survive the patch.
	assert.Equal(t, "genshin-impact", game.Slug)
	assert.Equal(t, "America/New_York", game.Timezone)
}

func TestGameService_DeleteGame(t *testing.T) {
	games := new(MockGameRepository)
	svc := newGameService(games)

	games.On("FindByID", mock.Anything, uint(1)).Return(&model.Game{ID: 1, Slug: "genshin-impact"}, nil)
	games.On("SoftDelete", mock.Anything, uint(1)).Return(nil)

	err := svc.DeleteGame(context.Background(), "boss", 1)
	require.NoError(t, err)
	games.AssertExpectations(t)
}
