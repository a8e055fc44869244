package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dailyquest/internal/model"
	"dailyquest/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateColumns(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountDependents(ctx context.Context, id uuid.UUID) (repository.DependentCounts, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.DependentCounts), args.Error(1)
}

// WithTransaction runs fn against the mock itself; rollback semantics are the
// real store's concern, the services only need the callback to execute.
func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.UserRepository) error) error {
	return fn(ctx, m)
}

// MockGameRepository is a mock implementation of repository.GameRepository.
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *model.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) FindByID(ctx context.Context, id uint) (*model.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *MockGameRepository) FindBySlug(ctx context.Context, slug string) (*model.Game, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *MockGameRepository) List(ctx context.Context, filter repository.GameFilter) ([]model.Game, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) Update(ctx context.Context, game *model.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) SoftDelete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserGameRepository is a mock implementation of repository.UserGameRepository.
type MockUserGameRepository struct {
	mock.Mock
}

func (m *MockUserGameRepository) Add(ctx context.Context, link *model.UserGame) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockUserGameRepository) Remove(ctx context.Context, userID uuid.UUID, gameID uint) (int64, error) {
	args := m.Called(ctx, userID, gameID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserGameRepository) Exists(ctx context.Context, userID uuid.UUID, gameID uint) (bool, error) {
	args := m.Called(ctx, userID, gameID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserGameRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserGame, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserGame), args.Error(1)
}

// MockCompletionRepository is a mock implementation of repository.CompletionRepository.
type MockCompletionRepository struct {
	mock.Mock
}

func (m *MockCompletionRepository) Create(ctx context.Context, completion *model.DailyCompletion) error {
	args := m.Called(ctx, completion)
	return args.Error(0)
}

func (m *MockCompletionRepository) FindForDay(ctx context.Context, userID uuid.UUID, gameID uint, day string) (*model.DailyCompletion, error) {
	args := m.Called(ctx, userID, gameID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyCompletion), args.Error(1)
}

func (m *MockCompletionRepository) ListForDay(ctx context.Context, userID uuid.UUID, day string) ([]model.DailyCompletion, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyCompletion), args.Error(1)
}

// MockReminderRepository is a mock implementation of repository.ReminderRepository.
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Upsert(ctx context.Context, setting *model.ReminderSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockReminderRepository) FindByUserAndGame(ctx context.Context, userID uuid.UUID, gameID uint) (*model.ReminderSetting, error) {
	args := m.Called(ctx, userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReminderSetting), args.Error(1)
}
