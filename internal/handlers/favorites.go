package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AddFavorite - POST /api/events/:eventId/favorite
func (h *Handlers) AddFavorite(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	sub, err := h.services.Favorites.Add(c.Request.Context(), memberID, c.Param("eventId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": sub.ID, "event_id": sub.EventID})
}

// RemoveFavorite - DELETE /api/events/:eventId/favorite
func (h *Handlers) RemoveFavorite(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	if err := h.services.Favorites.Remove(c.Request.Context(), memberID, c.Param("eventId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFavorites - GET /api/members/me/favorites
func (h *Handlers) ListFavorites(c *gin.Context) {
	memberID, ok := h.memberID(c)
	if !ok {
		return
	}

	ids, err := h.services.Favorites.ListEventIDs(c.Request.Context(), memberID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_ids": ids})
}
