// Package middleware wires the HTTP middlewares shared by every route:
// request logging, CORS, and per-client rate limiting.
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/server/ratelimit"
)

// Manager wires all HTTP middlewares with shared dependencies.
type Manager struct {
	rateLimiter    *ratelimit.Limiter
	allowedOrigins []string
}

// NewManager builds a middleware manager for the HTTP server.
func NewManager(limiter *ratelimit.Limiter, allowedOrigins []string) *Manager {
	return &Manager{
		rateLimiter:    limiter,
		allowedOrigins: allowedOrigins,
	}
}

// RequestLog tags each request with an ID and logs method, path, status,
// and duration.
func (m *Manager) RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// CORS allows configured origins; an empty configuration allows none.
func (m *Manager) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, allowed := range m.allowedOrigins {
			if allowed == "*" || allowed == origin {
				c.Header("Access-Control-Allow-Origin", allowed)
				c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Content-Type")
				break
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RateLimit enforces per-client-IP request limits.
func (m *Manager) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		if !m.rateLimiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
