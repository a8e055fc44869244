package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation error", NewValidationError("name is required"), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"stale token", ErrStaleToken, http.StatusUnauthorized, "STALE_TOKEN"},
		{"identity mismatch", ErrIdentityMismatch, http.StatusForbidden, "IDENTITY_MISMATCH"},
		{"admin required", ErrAdminRequired, http.StatusForbidden, "ADMIN_REQUIRED"},
		{"owner required", ErrOwnerRequired, http.StatusForbidden, "OWNER_REQUIRED"},
		{"self demotion", ErrSelfDemotion, http.StatusForbidden, "SELF_DEMOTION"},
		{"username taken", ErrUsernameTaken, http.StatusConflict, "USERNAME_TAKEN"},
		{"email taken", ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{"slug taken", ErrGameSlugTaken, http.StatusConflict, "SLUG_TAKEN"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"game not found", ErrGameNotFound, http.StatusNotFound, "GAME_NOT_FOUND"},
		{"game not tracked", ErrGameNotTracked, http.StatusNotFound, "GAME_NOT_TRACKED"},
		{"same password", ErrSamePassword, http.StatusBadRequest, "BAD_REQUEST"},
		{"invalid role", ErrInvalidRole, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown error", errors.New("database exploded"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("update role: %w", ErrOwnerRequired)
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Equal(t, "OWNER_REQUIRED", httpErr.Code)
}

func TestMapErrorToHTTP_InternalErrorsAreOpaque(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp: connection refused"))
	assert.Equal(t, "internal server error", httpErr.Message)
	assert.NotContains(t, httpErr.Message, "dial tcp")
}

func TestHTTPError_ToErrorResponse(t *testing.T) {
	httpErr := NewHTTPError(http.StatusConflict, "username already taken", "USERNAME_TAKEN")
	resp := httpErr.ToErrorResponse()
	assert.Equal(t, "username already taken", resp.Error)
	assert.Equal(t, "USERNAME_TAKEN", resp.Code)
	assert.Equal(t, "username already taken", httpErr.Error())
}
