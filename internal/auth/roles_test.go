package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "dailyquest/internal/errors"
)

func TestRole_Name(t *testing.T) {
	assert.Equal(t, "User", RoleUser.Name())
	assert.Equal(t, "Premium", RolePremium.Name())
	assert.Equal(t, "Admin", RoleAdmin.Name())
	assert.Equal(t, "Owner", RoleOwner.Name())
	assert.Equal(t, "Unknown", Role(0).Name())
	assert.Equal(t, "Unknown", Role(9).Name())
}

func TestRole_Valid(t *testing.T) {
	assert.False(t, Role(0).Valid())
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleOwner.Valid())
	assert.False(t, Role(5).Valid())
}

func TestRole_HasMinimum(t *testing.T) {
	assert.True(t, RoleAdmin.HasMinimum(RoleAdmin))
	assert.True(t, RoleOwner.HasMinimum(RoleAdmin))
	assert.False(t, RolePremium.HasMinimum(RoleAdmin))
}

func TestCanChangeRole(t *testing.T) {
	tests := []struct {
		name    string
		actor   Role
		current Role
		next    Role
		self    bool
		want    error
	}{
		{"admin promotes user to premium", RoleAdmin, RoleUser, RolePremium, false, nil},
		{"admin demotes premium to user", RoleAdmin, RolePremium, RoleUser, false, nil},
		{"admin cannot assign admin", RoleAdmin, RoleUser, RoleAdmin, false, apperrors.ErrOwnerRequired},
		{"admin cannot assign owner", RoleAdmin, RoleUser, RoleOwner, false, apperrors.ErrOwnerRequired},
		{"admin cannot demote an owner", RoleAdmin, RoleOwner, RoleUser, false, apperrors.ErrOwnerRequired},
		{"owner assigns admin", RoleOwner, RoleUser, RoleAdmin, false, nil},
		{"owner assigns owner", RoleOwner, RoleAdmin, RoleOwner, false, nil},
		{"owner demotes another owner", RoleOwner, RoleOwner, RoleUser, false, nil},
		{"owner cannot demote self", RoleOwner, RoleOwner, RoleAdmin, true, apperrors.ErrSelfDemotion},
		{"owner keeps own owner rank", RoleOwner, RoleOwner, RoleOwner, true, nil},
		{"premium cannot change roles", RolePremium, RoleUser, RolePremium, false, apperrors.ErrAdminRequired},
		{"user cannot change roles", RoleUser, RoleUser, RolePremium, false, apperrors.ErrAdminRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanChangeRole(tt.actor, tt.current, tt.next, tt.self)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
