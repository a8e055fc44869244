package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"dailyquest/internal/auth"
	apperrors "dailyquest/internal/errors"
	"dailyquest/internal/repository"
)

// identityKey is the echo context key the verified identity is stored under.
const identityKey = "identity"

// Identity is the authenticated caller, decoded from a verified bearer token.
// It is an explicit context value; handlers read it via IdentityFrom instead
// of poking at raw token claims.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	Username string
	Role     auth.Role
}

// IdentityFrom extracts the authenticated identity, if any.
func IdentityFrom(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityKey).(Identity)
	return identity, ok
}

func parseTokenFunc(tokens *auth.TokenService) func(c echo.Context, tokenString string) (interface{}, error) {
	return func(c echo.Context, tokenString string) (interface{}, error) {
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			return nil, err
		}
		return claims, nil
	}
}

func attachIdentity(c echo.Context) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return
	}
	c.Set(identityKey, Identity{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
	})
}

// RequireAuth rejects requests without a valid bearer token. Expiry gets its
// own message for UX; all other failures share one generic response.
func RequireAuth(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: parseTokenFunc(tokens),
		SuccessHandler: attachIdentity,
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, auth.ErrTokenExpired) {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "token expired, please log in again",
					Code:  "TOKEN_EXPIRED",
				})
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// OptionalAuth decorates the request with an identity when a valid token is
// present; absent or invalid tokens are swallowed and the request proceeds
// unauthenticated.
func OptionalAuth(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc:         parseTokenFunc(tokens),
		SuccessHandler:         attachIdentity,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// RequireMinimumRole gates a route on a store-verified rank. It must run
// after RequireAuth. The role is re-read from the store on every request:
// the token's embedded role claim is never trusted alone, and any divergence
// between claim and store is treated as staleness and rejected with 401 so
// the holder must log in again. This keeps previously issued tokens from
// retaining elevated privileges after a demotion.
func RequireMinimumRole(users repository.UserRepository, minimum auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "missing or invalid token",
					Code:  "UNAUTHORIZED",
				})
			}

			user, err := users.FindByID(c.Request().Context(), identity.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
						Error: apperrors.ErrStaleToken.Error(),
						Code:  "STALE_TOKEN",
					})
				}
				return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
					Error: "internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}

			if user.Role != identity.Role {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: apperrors.ErrStaleToken.Error(),
					Code:  "STALE_TOKEN",
				})
			}

			if !user.Role.HasMinimum(minimum) {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "insufficient privileges",
					Code:  "FORBIDDEN",
				})
			}

			return next(c)
		}
	}
}

// RequireAdmin gates a route on admin rank or above.
func RequireAdmin(users repository.UserRepository) echo.MiddlewareFunc {
	return RequireMinimumRole(users, auth.RoleAdmin)
}

// RequireOwner gates a route on owner rank.
func RequireOwner(users repository.UserRepository) echo.MiddlewareFunc {
	return RequireMinimumRole(users, auth.RoleOwner)
}
