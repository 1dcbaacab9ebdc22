package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumilens-app/backend/internal/models"
	"github.com/lumilens-app/backend/internal/service"
)

// UserHandler handles profile and follow HTTP requests
type UserHandler struct {
	profileService    *service.ProfileService
	engagementService *service.EngagementService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profileService *service.ProfileService, engagementService *service.EngagementService) *UserHandler {
	return &UserHandler{
		profileService:    profileService,
		engagementService: engagementService,
	}
}

// RegisterUserRoutes registers routes that require authentication
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.PATCH("/users/me", h.UpdateMe)
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// RegisterPublicUserRoutes registers routes that work anonymously
func (h *UserHandler) RegisterPublicUserRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetProfile)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// GetMe returns the caller's own profile with stats
func (h *UserHandler) GetMe(c echo.Context) error {
	view, err := h.profileService.GetMe(c.Request().Context(), getProfileID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateMe updates the caller's profile
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.profileService.UpdateProfile(c.Request().Context(), getProfileID(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetProfile returns a profile by ID or username, with the viewer's follow state
func (h *UserHandler) GetProfile(c echo.Context) error {
	view, err := h.profileService.GetProfile(c.Request().Context(), c.Param("id"), getProfileID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// ToggleFollow flips the caller's follow edge to the target (ID or username)
func (h *UserHandler) ToggleFollow(c echo.Context) error {
	result, err := h.engagementService.ToggleFollow(c.Request().Context(), getProfileID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetFollowers lists a profile's followers, most recent first
func (h *UserHandler) GetFollowers(c echo.Context) error {
	followers, err := h.engagementService.GetFollowers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, followers)
}

// GetFollowing lists who a profile follows, most recent first
func (h *UserHandler) GetFollowing(c echo.Context) error {
	following, err := h.engagementService.GetFollowing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, following)
}
