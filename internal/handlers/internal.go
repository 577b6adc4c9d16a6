package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cinecatch/internal/models"
)

// Internal trigger endpoints, called by the ingestion crawler. Each one maps
// to a single fan-out and answers with the delivery-count summary.

// NotifyEventUpdate - POST /api/internal/notifications/event-update
func (h *Handlers) NotifyEventUpdate(c *gin.Context) {
	var req models.EventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.services.Notify.NotifyNewEvent(c.Request.Context(), req.TheaterID, req.TheaterName, req.EventTitle)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NotifyResponse{
		Success:   true,
		Attempted: result.Attempted,
		SentCount: result.Succeeded,
	})
}

// NotifyStatusChange - POST /api/internal/notifications/status-change
func (h *Handlers) NotifyStatusChange(c *gin.Context) {
	var req models.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.services.Notify.NotifyStatusChange(c.Request.Context(), req.TheaterID, req.TheaterName, req.EventTitle, req.NewStatus)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NotifyResponse{
		Success:   true,
		Attempted: result.Attempted,
		SentCount: result.Succeeded,
	})
}

// NotifyFavoriteStatusChange - POST /api/internal/notifications/favorite-status-change
func (h *Handlers) NotifyFavoriteStatusChange(c *gin.Context) {
	var req models.FavoriteStatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.services.Notify.NotifyFavoriteStatusChange(c.Request.Context(), req.EventID, req.EventTitle, req.NewStatus)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NotifyResponse{
		Success:   true,
		Attempted: result.Attempted,
		SentCount: result.Succeeded,
	})
}
