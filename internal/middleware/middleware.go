package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cinecatch/internal/cache"
	"cinecatch/internal/logger"
	"cinecatch/internal/metrics"
	"cinecatch/internal/repository"
)

// Ctx key and helpers for the authenticated member id.
// Unexported type to avoid collisions.

type ctxKey string

const memberIDKey ctxKey = "member_id"

func ContextWithMemberID(ctx context.Context, memberID int64) context.Context {
	return context.WithValue(ctx, memberIDKey, memberID)
}

func MemberIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(memberIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// CORS handles cross-origin requests.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// Logger emits one structured line per completed request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		memberID, exists := c.Get("member_id")

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if exists {
			logFields = append(logFields, "member_id", memberID)
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			logger.Get().Error("request completed with error", logFields...)
		} else {
			logger.Get().Debug("request completed", logFields...)
		}
	}
}

// Recovery turns panics into 500 responses with a detailed log line.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Get().Error("panic recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}

// Metrics records request counts and latency per method/route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// BasicAuth authenticates a member by HTTP Basic Auth, checking the cache
// first and falling back to the database.
func BasicAuth(memberRepo *repository.MemberRepository, cacheClient *cache.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", "Basic realm=\"Restricted\"")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx := c.Request.Context()

		hash := sha256.Sum256([]byte(password))
		passwordHash := fmt.Sprintf("%x", hash)

		if cacheClient != nil {
			memberID, err := cacheClient.GetMemberIDByAuth(ctx, email, passwordHash)
			if err == nil {
				c.Set("member_id", memberID)
				c.Request = c.Request.WithContext(ContextWithMemberID(c.Request.Context(), memberID))
				c.Next()
				return
			}
		}

		member, err := memberRepo.GetByEmail(ctx, email)
		if err != nil || member == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if member.PasswordHash == "" || passwordHash != member.PasswordHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		c.Set("member_id", member.ID)
		c.Request = c.Request.WithContext(ContextWithMemberID(c.Request.Context(), member.ID))

		c.Next()
	}
}
