package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumilens-app/backend/internal/middleware"
	"github.com/lumilens-app/backend/internal/service"
)

// getProfileID returns the authenticated caller's profile ID, or "" when the
// request is anonymous or the profile has not been synced yet.
func getProfileID(c echo.Context) string {
	if id, ok := c.Get(middleware.ContextProfileID).(string); ok {
		return id
	}
	return ""
}

// getSubjectID returns the verified identity-provider subject for the request.
func getSubjectID(c echo.Context) string {
	if id, ok := c.Get(middleware.ContextSubjectID).(string); ok {
		return id
	}
	return ""
}

// getEmail returns the caller's email claim, when present.
func getEmail(c echo.Context) string {
	if email, ok := c.Get(middleware.ContextEmail).(string); ok {
		return email
	}
	return ""
}

// httpError maps service taxonomy errors to HTTP statuses.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidOperation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
