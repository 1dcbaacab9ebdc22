package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lumilens-app/backend/internal/service"
)

// NotificationHandler handles notification HTTP requests. The recipient is
// always the authenticated caller; a request can never read or mark another
// profile's notifications.
type NotificationHandler struct {
	engagementService *service.EngagementService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(engagementService *service.EngagementService) *NotificationHandler {
	return &NotificationHandler{engagementService: engagementService}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PATCH("/notifications/:id/read", h.MarkAsRead)
	g.PATCH("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications returns the caller's feed, most recent first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	entries, err := h.engagementService.ListNotifications(c.Request().Context(), getProfileID(c), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// GetUnreadCount returns the caller's unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.engagementService.UnreadCount(c.Request().Context(), getProfileID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	notifID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}
	if err := h.engagementService.MarkRead(c.Request().Context(), uint(notifID), getProfileID(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllAsRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.engagementService.MarkAllRead(c.Request().Context(), getProfileID(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
