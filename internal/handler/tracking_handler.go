package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dailyquest/internal/errors"
	"dailyquest/internal/middleware"
	"dailyquest/internal/service"
)

// TrackingHandler handles the authenticated user's tracked games, daily
// completions and reminders.
type TrackingHandler struct {
	trackingService service.TrackingService
}

// NewTrackingHandler creates a new tracking handler.
func NewTrackingHandler(trackingService service.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// ReminderRequest configures a pre-reset reminder.
type ReminderRequest struct {
	Enabled       bool `json:"enabled"`
	MinutesBefore int  `json:"minutes_before"`
}

// ListTracked godoc
// @Summary List the games the caller tracks
// @Tags tracking
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/games [get]
func (h *TrackingHandler) ListTracked(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	links, err := h.trackingService.ListTracked(c.Request().Context(), identity.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"games": links})
}

// TrackGame godoc
// @Summary Start tracking a game
// @Tags tracking
// @Produce json
// @Security BearerAuth
// @Param gameID path int true "Game ID"
// @Success 201 {object} model.UserGame
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/games/{gameID} [post]
func (h *TrackingHandler) TrackGame(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	gameID, err := parseUintParam(c, "gameID")
	if err != nil {
		return err
	}

	link, err := h.trackingService.TrackGame(c.Request().Context(), identity.UserID, gameID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, link)
}

// UntrackGame godoc
// @Summary Stop tracking a game
// @Tags tracking
// @Produce json
// @Security BearerAuth
// @Param gameID path int true "Game ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/games/{gameID} [delete]
func (h *TrackingHandler) UntrackGame(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	gameID, err := parseUintParam(c, "gameID")
	if err != nil {
		return err
	}

	if err := h.trackingService.UntrackGame(c.Request().Context(), identity.UserID, gameID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "game untracked"})
}

// CompleteToday godoc
// @Summary Mark a game's dailies done for today
// @Tags tracking
// @Produce json
// @Security BearerAuth
// @Param gameID path int true "Game ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/games/{gameID}/complete [post]
func (h *TrackingHandler) CompleteToday(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	gameID, err := parseUintParam(c, "gameID")
	if err != nil {
		return err
	}

	completion, created, err := h.trackingService.CompleteToday(c.Request().Context(), identity.UserID, gameID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{
		"completion":        completion,
		"already_completed": !created,
	})
}

// ListToday godoc
// @Summary List today's completions
// @Tags tracking
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/completions/today [get]
func (h *TrackingHandler) ListToday(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	completions, err := h.trackingService.ListToday(c.Request().Context(), identity.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"completions": completions})
}

// SetReminder godoc
// @Summary Configure a pre-reset reminder for a tracked game
// @Tags tracking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameID path int true "Game ID"
// @Param request body ReminderRequest true "Reminder settings"
// @Success 200 {object} model.ReminderSetting
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/games/{gameID}/reminder [put]
func (h *TrackingHandler) SetReminder(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	gameID, err := parseUintParam(c, "gameID")
	if err != nil {
		return err
	}

	var req ReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	setting, err := h.trackingService.SetReminder(c.Request().Context(), identity.UserID, gameID, req.Enabled, req.MinutesBefore)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, setting)
}
