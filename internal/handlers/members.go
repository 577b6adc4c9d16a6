package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cinecatch/internal/models"
)

// GetMe - GET /api/members/me
func (h *Handlers) GetMe(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	member, err := h.services.Members.Get(c.Request.Context(), memberID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// UpdateFcmToken - PUT /api/members/me/fcm-token
func (h *Handlers) UpdateFcmToken(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	var req models.FcmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Members.RegisterToken(c.Request.Context(), memberID, req.Token); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateNotificationSettings - PUT /api/members/me/notification-settings
func (h *Handlers) UpdateNotificationSettings(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	var req models.NotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Members.SetNotificationEnabled(c.Request.Context(), memberID, *req.Enabled); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
