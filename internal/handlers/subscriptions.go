package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cinecatch/internal/models"
)

// CreateSubscription - POST /api/subscriptions
func (h *Handlers) CreateSubscription(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	var req models.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.services.Subscriptions.Subscribe(c.Request.Context(), memberID, req.TheaterID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SubscriptionResponse{
		ID:        sub.ID,
		TheaterID: sub.TheaterID,
		CreatedAt: sub.CreatedAt,
	})
}

// DeleteSubscription - DELETE /api/subscriptions/:theaterId
func (h *Handlers) DeleteSubscription(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	if err := h.services.Subscriptions.Unsubscribe(c.Request.Context(), memberID, c.Param("theaterId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSubscriptions - GET /api/subscriptions
func (h *Handlers) ListSubscriptions(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	subs, err := h.services.Subscriptions.List(c.Request.Context(), memberID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}
