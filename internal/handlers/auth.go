package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumilens-app/backend/internal/models"
	"github.com/lumilens-app/backend/internal/service"
)

// AuthHandler handles the session bootstrap sync
type AuthHandler struct {
	profileService *service.ProfileService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(profileService *service.ProfileService) *AuthHandler {
	return &AuthHandler{profileService: profileService}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/sync", h.SyncProfile)
}

// SyncProfile gets or creates the caller's profile from the verified subject.
// Idempotent; called once per session bootstrap by the client.
func (h *AuthHandler) SyncProfile(c echo.Context) error {
	subjectID := getSubjectID(c)
	if subjectID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SyncProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.profileService.Sync(c.Request().Context(), subjectID, getEmail(c), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"profile": view.Profile,
		"stats":   view.Stats,
	})
}
