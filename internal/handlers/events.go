package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cinecatch/internal/logger"
	"cinecatch/internal/models"
)

// parseGeoFilter reads lat/lng/radius query params. Returns nil when neither
// coordinate is present; an error message when only one is, or a value fails
// to parse.
func parseGeoFilter(c *gin.Context) (*models.GeoFilter, string) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	if latStr == "" && lngStr == "" {
		return nil, ""
	}
	if latStr == "" || lngStr == "" {
		return nil, "lat and lng must be provided together"
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, "lat must be a number"
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, "lng must be a number"
	}

	filter := &models.GeoFilter{Latitude: lat, Longitude: lng}
	if radiusStr := c.Query("radius"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			return nil, "radius must be a number"
		}
		filter.Radius = &radius
	}
	return filter, ""
}

// ListEvents - GET /api/events
// Dispatches on query params: lat/lng select the nearby view, movieTitle the
// text search, neither the full active list.
func (h *Handlers) ListEvents(c *gin.Context) {
	filter, errMsg := parseGeoFilter(c)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	if filter != nil {
		views, err := h.services.Events.ListNearby(c.Request.Context(), *filter)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
		return
	}

	if title := c.Query("movieTitle"); title != "" {
		views, err := h.services.Events.SearchByMovieTitle(c.Request.Context(), title)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
		return
	}

	h.listActiveEvents(c)
}

// listActiveEvents serves the unfiltered active list, the one read hot
// enough to cache. Cache misses and write failures fall through silently.
func (h *Handlers) listActiveEvents(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cacheClient != nil {
		raw, err := h.cacheClient.GetActiveEventsRaw(ctx)
		if err == nil && len(raw) > 0 {
			c.Data(http.StatusOK, "application/json", raw)
			return
		}
	}

	views, err := h.services.Events.ListActive(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.cacheClient != nil {
		if err := h.cacheClient.SetActiveEvents(ctx, views); err != nil {
			logger.WithContext(ctx).Warn("failed to cache active events", "error", err)
		}
	}

	c.JSON(http.StatusOK, views)
}

// ListNearbyEvents - GET /api/events/nearby
func (h *Handlers) ListNearbyEvents(c *gin.Context) {
	filter, errMsg := parseGeoFilter(c)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}
	if filter == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}

	views, err := h.services.Events.ListNearby(c.Request.Context(), *filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetEvent - GET /api/events/:eventId
// With lat/lng the theater list is narrowed to the caller's surroundings.
func (h *Handlers) GetEvent(c *gin.Context) {
	filter, errMsg := parseGeoFilter(c)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	view, err := h.services.Events.GetDetail(c.Request.Context(), c.Param("eventId"), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
