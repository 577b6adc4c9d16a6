package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinecatch/internal/models"
)

// ListNotifications - GET /api/notifications
func (h *Handlers) ListNotifications(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	notifications, err := h.services.Notifications.List(c.Request.Context(), memberID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead - PUT /api/notifications/:notificationId/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("notificationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.services.Notifications.MarkRead(c.Request.Context(), id, memberID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnreadNotificationCount - GET /api/notifications/unread-count
func (h *Handlers) UnreadNotificationCount(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	count, err := h.services.Notifications.UnreadCount(c.Request.Context(), memberID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UnreadCountResponse{Count: count})
}
