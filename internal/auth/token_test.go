package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret")
	userID := uuid.New()

	token, err := svc.Issue(userID, "alice@example.com", "alice_01", RolePremium)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice_01", claims.Username)
	assert.Equal(t, RolePremium, claims.Role)
}

func TestTokenService_ExpiryIsThirtyDays(t *testing.T) {
	svc := NewTokenService("test-secret")

	before := time.Now()
	token, err := svc.Issue(uuid.New(), "a@b.com", "alice_01", RoleUser)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 30*24*time.Hour, lifetime)
	assert.WithinDuration(t, before.Add(TokenExpiry), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.issueWithExpiry(uuid.New(), "a@b.com", "alice_01", RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one")
	verifier := NewTokenService("secret-two")

	token, err := issuer.Issue(uuid.New(), "a@b.com", "alice_01", RoleUser)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_GarbageToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenMalformed)
	}
}
