package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailyquest/internal/auth"
	apperrors "dailyquest/internal/errors"
	"dailyquest/internal/model"
	"dailyquest/internal/repository"
	"dailyquest/internal/timezone"
)

// ProfileUpdateInput carries the optional profile fields; nil means "leave
// unchanged". At least one field must be set.
type ProfileUpdateInput struct {
	Timezone  *string
	FirstName *string
	LastName  *string
	Phone     *string
}

// DeleteResult summarizes a completed account deletion for the audit response.
type DeleteResult struct {
	User            *model.User
	DependentCounts repository.DependentCounts
}

// AccountService handles mutations of the authenticated user's own account.
// Every operation that reads then writes runs inside a single transaction.
type AccountService interface {
	UpdatePassword(ctx context.Context, userID uuid.UUID, identifier, currentPassword, newPassword, confirmNewPassword string) error
	UpdateEmail(ctx context.Context, userID uuid.UUID, newEmail, password string) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdateInput) (*model.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID, identifier, password string) (*DeleteResult, error)
}

type accountService struct {
	users     repository.UserRepository
	hasher    *auth.PasswordHasher
	timezones *timezone.Service
}

// NewAccountService creates a new account service.
func NewAccountService(users repository.UserRepository, hasher *auth.PasswordHasher, timezones *timezone.Service) AccountService {
	return &accountService{
		users:     users,
		hasher:    hasher,
		timezones: timezones,
	}
}

// UpdatePassword replaces the password hash after re-confirming the caller's
// identity with an identifier plus the current password. Stateless validation
// runs before the transaction so no store work happens on a 400.
func (s *accountService) UpdatePassword(ctx context.Context, userID uuid.UUID, identifier, currentPassword, newPassword, confirmNewPassword string) error {
	if newPassword != confirmNewPassword {
		return apperrors.ErrPasswordConfirmation
	}
	if newPassword == currentPassword {
		return apperrors.ErrSamePassword
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	var username string
	err := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		user, err := s.confirmIdentity(ctx, repo, userID, identifier, currentPassword)
		if err != nil {
			return err
		}

		hashed, err := s.hasher.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		username = user.Username
		return repo.UpdateColumns(ctx, user.ID, map[string]interface{}{"password_hash": hashed})
	})
	if err != nil {
		return err
	}

	log.Printf("audit: password changed username=%s", username)
	return nil
}

// UpdateEmail replaces the account email after password confirmation.
func (s *accountService) UpdateEmail(ctx context.Context, userID uuid.UUID, newEmail, password string) error {
	email, err := normalizeEmail(newEmail)
	if err != nil {
		return err
	}

	var username string
	err = s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrIdentityMismatch
			}
			return fmt.Errorf("find user: %w", err)
		}

		if email == strings.ToLower(user.Email) {
			return apperrors.ErrSameEmail
		}

		ok, err := s.hasher.Verify(password, user.PasswordHash)
		if err != nil {
			return fmt.Errorf("verify password: %w", err)
		}
		if !ok {
			return apperrors.ErrIdentityMismatch
		}

		username = user.Username
		if err := repo.UpdateColumns(ctx, user.ID, map[string]interface{}{"email": email}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrEmailTaken
			}
			return fmt.Errorf("update email: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("audit: email changed username=%s", username)
	return nil
}

// UpdateProfile applies a partial update of the non-sensitive fields. No
// password confirmation is required.
func (s *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdateInput) (*model.User, error) {
	updates := map[string]interface{}{}

	if input.Timezone != nil {
		if !s.timezones.IsValid(*input.Timezone) {
			return nil, apperrors.ErrInvalidTimezone
		}
		updates["timezone"] = s.timezones.Normalize(*input.Timezone)
	}
	if input.FirstName != nil {
		if err := auth.ValidateName("first_name", *input.FirstName); err != nil {
			return nil, err
		}
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		if err := auth.ValidateName("last_name", *input.LastName); err != nil {
			return nil, err
		}
		updates["last_name"] = *input.LastName
	}
	if input.Phone != nil {
		if err := auth.ValidatePhone(*input.Phone); err != nil {
			return nil, err
		}
		updates["phone"] = *input.Phone
	}

	if len(updates) == 0 {
		return nil, apperrors.ErrNoFieldsProvided
	}

	var updated *model.User
	err := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		if _, err := repo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrIdentityMismatch
			}
			return fmt.Errorf("find user: %w", err)
		}
		if err := repo.UpdateColumns(ctx, userID, updates); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		var err error
		updated, err = repo.FindByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAccount removes the user after triple confirmation: valid token,
// matching identifier, and correct password. Dependent rows are counted
// before the delete; the store's cascading foreign keys remove them in the
// same transaction.
func (s *accountService) DeleteAccount(ctx context.Context, userID uuid.UUID, identifier, password string) (*DeleteResult, error) {
	var result DeleteResult
	err := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		user, err := s.confirmIdentity(ctx, repo, userID, identifier, password)
		if err != nil {
			return err
		}

		counts, err := repo.CountDependents(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("count dependents: %w", err)
		}

		if err := repo.Delete(ctx, user.ID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}

		result = DeleteResult{User: user, DependentCounts: counts}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("audit: account deleted username=%s tracked_games=%d completions=%d reminders=%d",
		result.User.Username, result.DependentCounts.TrackedGames,
		result.DependentCounts.Completions, result.DependentCounts.Reminders)

	return &result, nil
}

// confirmIdentity loads the token-bound row and checks that the supplied
// identifier and password jointly match it. All failure causes collapse to
// ErrIdentityMismatch so responses never reveal which check failed.
func (s *accountService) confirmIdentity(ctx context.Context, repo repository.UserRepository, userID uuid.UUID, identifier, password string) (*model.User, error) {
	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIdentityMismatch
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if identifier != user.Username && strings.ToLower(identifier) != strings.ToLower(user.Email) {
		// Burn the verification anyway so the identifier check is not
		// observable through response timing.
		s.hasher.DummyVerify()
		return nil, apperrors.ErrIdentityMismatch
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrIdentityMismatch
	}
	return user, nil
}
