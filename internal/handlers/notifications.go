package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-service/internal/links"
	"social-service/internal/repositories"
)

// NotificationsHandler serves the durable notification log.
type NotificationsHandler struct {
	manager *links.Manager
}

// NewNotificationsHandler builds a NotificationsHandler.
func NewNotificationsHandler(manager *links.Manager) *NotificationsHandler {
	return &NotificationsHandler{manager: manager}
}

// List returns one page of the user's notifications, newest-first.
func (h *NotificationsHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	page, err := h.manager.ListNotifications(c.Request.Context(), userID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// MarkSeen flips a notification's seen flag.
func (h *NotificationsHandler) MarkSeen(c *gin.Context) {
	notificationID := c.Param("notification_id")

	err := h.manager.MarkNotificationSeen(c.Request.Context(), notificationID)
	if err != nil {
		switch {
		case errors.Is(err, links.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repositories.ErrNotificationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update notification"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
