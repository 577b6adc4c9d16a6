package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cinecatch/internal/cache"
	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/logger"
	"cinecatch/internal/middleware"
	"cinecatch/internal/service"
)

type Handlers struct {
	services    *service.Services
	cacheClient *cache.Client
}

func NewHandlers(services *service.Services, cacheClient *cache.Client) *Handlers {
	return &Handlers{
		services:    services,
		cacheClient: cacheClient,
	}
}

// respondError maps service errors onto HTTP statuses. Anything outside the
// sentinel taxonomy is a 500 with a generic message; the detail goes to the
// log, not the client.
func (h *Handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// memberID pulls the authenticated member id set by the BasicAuth middleware.
func (h *Handlers) memberID(c *gin.Context) (int64, bool) {
	id, ok := middleware.MemberIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return id, ok
}
