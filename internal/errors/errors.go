package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The same message covers unknown email and wrong password so login
	// failures cannot be used to probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrIdentityMismatch is returned when a secondary confirmation
	// (identifier + password) does not jointly match the token-bound account.
	// One message for both failure causes, deliberately.
	ErrIdentityMismatch = errors.New("invalid password or account identifier")
	// ErrUsernameTaken is returned when the requested username already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when the requested email already exists.
	ErrEmailTaken = errors.New("email already in use")
	// ErrUserNotFound is returned when a user lookup by username fails.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidTimezone is returned when a supplied timezone is not a known zone.
	ErrInvalidTimezone = errors.New("invalid timezone")
	// ErrSamePassword is returned when the new password equals the current one.
	ErrSamePassword = errors.New("new password must differ from current password")
	// ErrPasswordConfirmation is returned when password and confirmation differ.
	ErrPasswordConfirmation = errors.New("password confirmation does not match")
	// ErrSameEmail is returned when the new email equals the current one.
	ErrSameEmail = errors.New("new email is identical to the current email")
	// ErrNoFieldsProvided is returned when a partial update carries no fields.
	ErrNoFieldsProvided = errors.New("no fields provided to update")
	// ErrStaleToken is returned when a token's role claim no longer matches the
	// stored role. The holder must log in again.
	ErrStaleToken = errors.New("token no longer matches account state")
	// ErrInvalidRole is returned when a role value is outside the defined set.
	ErrInvalidRole = errors.New("invalid role")
	// ErrAdminRequired is returned when a role change needs at least admin rank.
	ErrAdminRequired = errors.New("admin privileges required for this role change")
	// ErrOwnerRequired is returned when a role change needs owner rank.
	ErrOwnerRequired = errors.New("only an owner can perform this role change")
	// ErrSelfDemotion is returned when an owner tries to remove their own owner rank.
	ErrSelfDemotion = errors.New("owners cannot remove their own owner role")
	// ErrGameNotFound is returned when a catalog lookup fails.
	ErrGameNotFound = errors.New("game not found")
	// ErrGameSlugTaken is returned when a catalog slug already exists.
	ErrGameSlugTaken = errors.New("game slug already in use")
	// ErrGameNotTracked is returned when the user does not track the game.
	ErrGameNotTracked = errors.New("game is not tracked by this user")
)

// ValidationError carries a message naming the exact constraint that failed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return NewHTTPError(http.StatusBadRequest, ve.Message, "VALIDATION_FAILED")
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrStaleToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "STALE_TOKEN")
	case errors.Is(err, ErrIdentityMismatch):
		return NewHTTPError(http.StatusForbidden, err.Error(), "IDENTITY_MISMATCH")
	case errors.Is(err, ErrAdminRequired):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ADMIN_REQUIRED")
	case errors.Is(err, ErrOwnerRequired):
		return NewHTTPError(http.StatusForbidden, err.Error(), "OWNER_REQUIRED")
	case errors.Is(err, ErrSelfDemotion):
		return NewHTTPError(http.StatusForbidden, err.Error(), "SELF_DEMOTION")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrGameSlugTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "SLUG_TAKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrGameNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GAME_NOT_FOUND")
	case errors.Is(err, ErrGameNotTracked):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GAME_NOT_TRACKED")
	case errors.Is(err, ErrInvalidTimezone),
		errors.Is(err, ErrSamePassword),
		errors.Is(err, ErrPasswordConfirmation),
		errors.Is(err, ErrSameEmail),
		errors.Is(err, ErrNoFieldsProvided),
		errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BAD_REQUEST")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
