package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"dailyquest/internal/auth"
	"dailyquest/internal/config"
	"dailyquest/internal/handler"
	"dailyquest/internal/middleware"
	"dailyquest/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	gameHandler *handler.GameHandler,
	trackingHandler *handler.TrackingHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := middleware.RequireAuth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	api := e.Group("/api")

	// Public auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Authenticated account routes
	api.GET("/auth/me", authHandler.Me, requireAuth)
	api.PATCH("/auth/update-password", authHandler.UpdatePassword, requireAuth)
	api.PATCH("/auth/update-email", authHandler.UpdateEmail, requireAuth)
	api.PUT("/auth/profile", authHandler.UpdateProfile, requireAuth)
	api.DELETE("/auth/account", authHandler.DeleteAccount, requireAuth)

	// Catalog reads are public; a valid token widens what admins can see.
	api.GET("/games", gameHandler.ListGames, optionalAuth)
	api.GET("/games/:id", gameHandler.GetGame, optionalAuth)
	api.GET("/games/:id/reset", gameHandler.NextReset, optionalAuth)

	// Tracked games, completions, reminders
	me := api.Group("/me", requireAuth)
	me.GET("/games", trackingHandler.ListTracked)
	me.POST("/games/:gameID", trackingHandler.TrackGame)
	me.DELETE("/games/:gameID", trackingHandler.UntrackGame)
	me.POST("/games/:gameID/complete", trackingHandler.CompleteToday)
	me.GET("/completions/today", trackingHandler.ListToday)
	me.PUT("/games/:gameID/reminder", trackingHandler.SetReminder)

	// Admin routes re-check the caller's role against the store per request.
	admin := api.Group("/admin", requireAuth, middleware.RequireAdmin(users))
	admin.PATCH("/users/role/:username", adminHandler.UpdateRole)
	admin.POST("/games", gameHandler.CreateGame)
	admin.PUT("/games/:id", gameHandler.UpdateGame)

	// Removing catalog entries is owner-only.
	api.DELETE("/admin/games/:id", gameHandler.DeleteGame,
		requireAuth, middleware.RequireOwner(users))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
