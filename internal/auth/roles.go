package auth

import (
	apperrors "dailyquest/internal/errors"
)

// Role is the ordered privilege rank of a user.
type Role int

const (
	RoleUser Role = iota + 1
	RolePremium
	RoleAdmin
	RoleOwner
)

// Name returns the display name of a role, "Unknown" for out-of-range values.
func (r Role) Name() string {
	switch r {
	case RoleUser:
		return "User"
	case RolePremium:
		return "Premium"
	case RoleAdmin:
		return "Admin"
	case RoleOwner:
		return "Owner"
	default:
		return "Unknown"
	}
}

// Valid reports whether r is one of the four defined ranks.
func (r Role) Valid() bool {
	return r >= RoleUser && r <= RoleOwner
}

// HasMinimum reports whether r meets the required rank.
func (r Role) HasMinimum(required Role) bool {
	return r >= required
}

// CanChangeRole applies the role-mutation decision table: assigning admin or
// owner rank requires an owner actor, as does touching a current owner; an
// owner may never strip their own owner rank; everything else requires admin.
// Returns nil when the change is allowed.
func CanChangeRole(actor, targetCurrent, newRole Role, self bool) error {
	if self && actor == RoleOwner && newRole < RoleOwner {
		return apperrors.ErrSelfDemotion
	}
	if newRole == RoleOwner || newRole == RoleAdmin {
		if actor != RoleOwner {
			return apperrors.ErrOwnerRequired
		}
		return nil
	}
	if targetCurrent == RoleOwner {
		if actor != RoleOwner {
			return apperrors.ErrOwnerRequired
		}
		return nil
	}
	if !actor.HasMinimum(RoleAdmin) {
		return apperrors.ErrAdminRequired
	}
	return nil
}
