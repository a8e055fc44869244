package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dailyquest/internal/auth"
	apperrors "dailyquest/internal/errors"
	"dailyquest/internal/model"
)

func TestAdminService_UpdateRole_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAdminService(users)

	actor := &model.User{ID: uuid.New(), Username: "boss", Role: auth.RoleAdmin}
	target := &model.User{ID: uuid.New(), Username: "alice_01", Role: auth.RoleUser}

	users.On("FindByID", mock.Anything, actor.ID).Return(actor, nil)
	users.On("FindByUsername", mock.Anything, "alice_01").Return(target, nil)
	users.On("UpdateColumns", mock.Anything, target.ID, map[string]interface{}{
		"role": auth.RolePremium,
	}).Return(nil)

	updated, err := svc.UpdateRole(context.Background(), actor.ID, "alice_01", auth.RolePremium, "supporter perk")
	require.NoError(t, err)
	assert.Equal(t, auth.RolePremium, updated.Role)
	users.AssertExpectations(t)
}

func TestAdminService_UpdateRole_InvalidRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAdminService(users)

	_, err := svc.UpdateRole(context.Background(), uuid.New(), "alice_01", auth.Role(9), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAdminService_UpdateRole_StaleActor(t *testing.T) {
	// The actor's token is valid but the account row is gone.
	users := new(MockUserRepository)
	svc := NewAdminService(users)

	actorID := uuid.New()
	users.On("FindByID", mock.Anything, actorID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateRole(context.Background(), actorID, "alice_01", auth.RolePremium, "")
	assert.ErrorIs(t, err, apperrors.ErrStaleToken)
}

func TestAdminService_UpdateRole_TargetNotFound(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAdminService(users)

	actor := &model.User{ID: uuid.New(), Username: "boss", Role: auth.RoleAdmin}
	users.On("FindByID", mock.Anything, actor.ID).Return(actor, nil)
	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateRole(context.Background(), actor.ID, "ghost", auth.RolePremium, "")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAdminService_UpdateRole_PolicyGates(t *testing.T) {
	tests := []struct {
		name      string
		actorRole auth.Role
		target    auth.Role
		newRole   auth.Role
		want      error
	}{
		{"admin cannot assign admin", auth.RoleAdmin, auth.RoleUser, auth.RoleAdmin, apperrors.ErrOwnerRequired},
		{"admin cannot touch an owner", auth.RoleAdmin, auth.RoleOwner, auth.RoleUser, apperrors.ErrOwnerRequired},
		{"premium cannot change roles", auth.RolePremium, auth.RoleUser, auth.RolePremium, apperrors.ErrAdminRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			svc := NewAdminService(users)

			actor := &model.User{ID: uuid.New(), Username: "actor_user", Role: tt.actorRole}
			target := &model.User{ID: uuid.New(), Username: "target_user", Role: tt.target}
			users.On("FindByID", mock.Anything, actor.ID).Return(actor, nil)
			users.On("FindByUsername", mock.Anything, "target_user").Return(target, nil)

			_, err := svc.UpdateRole(context.Background(), actor.ID, "target_user", tt.newRole, "")
			assert.ErrorIs(t, err, tt.want)
			users.AssertNotCalled(t, "UpdateColumns", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAdminService_UpdateRole_OwnerSelfDemotionBlocked(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAdminService(users)

	owner := &model.User{ID: uuid.New(), Username: "the_owner", Role: auth.RoleOwner}
	users.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
	users.On("FindByUsername", mock.Anything, "the_owner").Return(owner, nil)

	_, err := svc.UpdateRole(context.Background(), owner.ID, "the_owner", auth.RoleAdmin, "stepping down")
	assert.ErrorIs(t, err, apperrors.ErrSelfDemotion)
	users.AssertNotCalled(t, "UpdateColumns", mock.Anything, mock.Anything, mock.Anything)
}
