package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dailyquest/internal/auth"
	"dailyquest/internal/errors"
	"dailyquest/internal/middleware"
	"dailyquest/internal/repository"
	"dailyquest/internal/service"
)

// GameHandler handles catalog endpoints, public reads and admin curation.
type GameHandler struct {
	gameService service.GameService
}

// NewGameHandler creates a new game handler.
func NewGameHandler(gameService service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// GameRequest represents catalog create/update data.
type GameRequest struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Region    string `json:"region,omitempty"`
	Timezone  string `json:"timezone"`
	ResetTime string `json:"reset_time"`
	Active    *bool  `json:"active,omitempty"`
}

// ListGames godoc
// @Summary List the game catalog
// @Tags games
// @Produce json
// @Param region query string false "Filter by server region"
// @Param search query string false "Search by name"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} service.GamePage
// @Failure 500 {object} errors.ErrorResponse
// @Router /games [get]
func (h *GameHandler) ListGames(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := repository.GameFilter{
		Region: c.QueryParam("region"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	}
	// Admins browsing the catalog also see deactivated entries.
	if identity, ok := middleware.IdentityFrom(c); ok {
		filter.IncludeInactive = identity.Role.HasMinimum(auth.RoleAdmin)
	}

	result, err := h.gameService.ListGames(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// GetGame godoc
// @Summary Get a catalog entry
// @Tags games
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} model.Game
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /games/{id} [get]
func (h *GameHandler) GetGame(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	game, err := h.gameService.GetGame(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, game)
}

// NextReset godoc
// @Summary Get the next daily reset for a game
// @Tags games
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} service.ResetInfo
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /games/{id}/reset [get]
func (h *GameHandler) NextReset(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	info, err := h.gameService.NextReset(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, info)
}

// CreateGame godoc
// @Summary Add a game to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GameRequest true "Game data"
// @Success 201 {object} model.Game
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/games [post]
func (h *GameHandler) CreateGame(c echo.Context) error {
	identity, _ := middleware.IdentityFrom(c)

	var req GameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	game, err := h.gameService.CreateGame(c.Request().Context(), identity.Username, service.GameInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Region:    req.Region,
		Timezone:  req.Timezone,
		ResetTime: req.ResetTime,
		Active:    req.Active,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, game)
}

// UpdateGame godoc
// @Summary Update a catalog entry
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Game ID"
// @Param request body GameRequest true "Fields to change"
// @Success 200 {object} model.Game
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/games/{id} [put]
func (h *GameHandler) UpdateGame(c echo.Context) error {
	identity, _ := middleware.IdentityFrom(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var req GameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	game, err := h.gameService.UpdateGame(c.Request().Context(), identity.Username, id, service.GameInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Region:    req.Region,
		Timezone:  req.Timezone,
		ResetTime: req.ResetTime,
		Active:    req.Active,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, game)
}

// DeleteGame godoc
// @Summary Remove a catalog entry (soft delete)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Game ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/games/{id} [delete]
func (h *GameHandler) DeleteGame(c echo.Context) error {
	identity, _ := middleware.IdentityFrom(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.gameService.DeleteGame(c.Request().Context(), identity.Username, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "game deleted",
	})
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_PARAM",
		})
	}
	return uint(v), nil
}
