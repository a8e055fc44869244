package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"dailyquest/internal/auth"
	apperrors "dailyquest/internal/errors"
	"dailyquest/internal/model"
	"dailyquest/internal/repository"
	"dailyquest/internal/timezone"
)

// tokenExpiryDescription is the human-readable token lifetime returned to clients.
const tokenExpiryDescription = "30 days"

// RegisterInput carries everything a registration needs. TimezoneHint comes
// from the X-Timezone request header and is only consulted when Timezone is
// empty.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       *string
	LastName        *string
	Phone           *string
	Timezone        string
	TimezoneHint    string
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	User                 *model.User
	TimezoneAutoDetected bool
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token     string
	User      *model.User
	ExpiresIn string
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	users     repository.UserRepository
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenService
	timezones *timezone.Service
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService, timezones *timezone.Service) AuthService {
	return &authService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		timezones: timezones,
	}
}

// Register validates input, resolves the account timezone, hashes the
// password and inserts the user. All validation happens before any store
// mutation.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if err := auth.ValidateUsername(input.Username); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if input.Password != input.ConfirmPassword {
		return nil, apperrors.ErrPasswordConfirmation
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if err := validateOptionalProfile(input.FirstName, input.LastName, input.Phone); err != nil {
		return nil, err
	}

	tz, autoDetected, err := s.timezones.Resolve(input.Timezone, input.TimezoneHint)
	if err != nil {
		return nil, err
	}

	// Pre-checks give precise conflict errors; the unique constraints remain
	// the source of truth under concurrent registration.
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        email,
		PasswordHash: hashed,
		Timezone:     tz,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         auth.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyDuplicate(ctx, input.Username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Printf("audit: user registered username=%s role=%s", user.Username, user.Role.Name())

	return &RegisterResult{User: user, TimezoneAutoDetected: autoDetected}, nil
}

// classifyDuplicate decides which unique constraint lost the race.
func (s *authService) classifyDuplicate(ctx context.Context, username string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return apperrors.ErrUsernameTaken
	}
	return apperrors.ErrEmailTaken
}

// Login authenticates by email and password and issues a bearer token. An
// unknown email burns a dummy hash verification so its latency matches the
// wrong-password path, and both failures share one generic error.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.DummyVerify()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		log.Printf("audit: failed login username=%s", user.Username)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	log.Printf("audit: login username=%s role=%s", user.Username, user.Role.Name())

	return &LoginResult{
		Token:     token,
		User:      user,
		ExpiresIn: tokenExpiryDescription,
	}, nil
}

// normalizeEmail validates syntax and lowercases for the case-insensitive
// uniqueness comparison.
func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperrors.NewValidationError("email is not a valid address")
	}
	return strings.ToLower(email), nil
}

func validateOptionalProfile(firstName, lastName, phone *string) error {
	if firstName != nil {
		if err := auth.ValidateName("first_name", *firstName); err != nil {
			return err
		}
	}
	if lastName != nil {
		if err := auth.ValidateName("last_name", *lastName); err != nil {
			return err
		}
	}
	if phone != nil {
		if err := auth.ValidatePhone(*phone); err != nil {
			return err
		}
	}
	return nil
}
