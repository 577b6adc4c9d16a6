package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListTheaters - GET /api/theaters
// With lat/lng returns theaters around the point; otherwise the full list,
// optionally filtered by brand.
func (h *Handlers) ListTheaters(c *gin.Context) {
	filter, errMsg := parseGeoFilter(c)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	if filter != nil {
		theaters, err := h.services.Theaters.FindNearby(c.Request.Context(), filter.Latitude, filter.Longitude, filter.Radius)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, theaters)
		return
	}

	theaters, err := h.services.Theaters.List(c.Request.Context(), c.Query("brand"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, theaters)
}

// GetTheater - GET /api/theaters/:theaterId
func (h *Handlers) GetTheater(c *gin.Context) {
	theater, err := h.services.Theaters.GetByID(c.Request.Context(), c.Param("theaterId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, theater)
}

// ListTheaterEvents - GET /api/theaters/:theaterId/events
// The theater's active events with their inventory status.
func (h *Handlers) ListTheaterEvents(c *gin.Context) {
	views, err := h.services.Events.ListForTheater(c.Request.Context(), c.Param("theaterId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
