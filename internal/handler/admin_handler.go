package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dailyquest/internal/auth"
	"dailyquest/internal/errors"
	"dailyquest/internal/middleware"
	"dailyquest/internal/service"
)

// AdminHandler handles privileged user administration endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// UpdateRoleRequest represents a role change request.
type UpdateRoleRequest struct {
	Role   int    `json:"role" validate:"required"`
	Reason string `json:"reason,omitempty"`
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Target username"
// @Param request body UpdateRoleRequest true "New role and optional reason"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/role/{username} [patch]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	target, err := h.adminService.UpdateRole(c.Request().Context(), identity.UserID,
		c.Param("username"), auth.Role(req.Role), req.Reason)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "role updated successfully",
		"user":    target,
	})
}
