package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailyquest/internal/auth"
	apperrors "dailyquest/internal/errors"
	"dailyquest/internal/model"
	"dailyquest/internal/repository"
)

// AdminService handles privileged user administration.
type AdminService interface {
	UpdateRole(ctx context.Context, actorID uuid.UUID, targetUsername string, newRole auth.Role, reason string) (*model.User, error)
}

type adminService struct {
	users repository.UserRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(users repository.UserRepository) AdminService {
	return &adminService{users: users}
}

// UpdateRole changes a target user's rank after applying the role decision
// table. The actor's rank is read fresh from the store, never from the token.
func (s *adminService) UpdateRole(ctx context.Context, actorID uuid.UUID, targetUsername string, newRole auth.Role, reason string) (*model.User, error) {
	if !newRole.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	var target *model.User
	var oldRole auth.Role
	err := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		actor, err := repo.FindByID(ctx, actorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrStaleToken
			}
			return fmt.Errorf("find actor: %w", err)
		}

		target, err = repo.FindByUsername(ctx, targetUsername)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("find target: %w", err)
		}

		if err := auth.CanChangeRole(actor.Role, target.Role, newRole, actor.ID == target.ID); err != nil {
			return err
		}

		oldRole = target.Role
		if err := repo.UpdateColumns(ctx, target.ID, map[string]interface{}{"role": newRole}); err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		target.Role = newRole

		auditReason := reason
		if auditReason == "" {
			auditReason = "No reason provided"
		}
		// The audit trail is a log line, not a store row.
		log.Printf("audit: role change actor=%s target=%s old=%s new=%s reason=%q",
			actor.Username, target.Username, oldRole.Name(), newRole.Name(), auditReason)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}
