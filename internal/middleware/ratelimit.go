package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cryptopulse/internal/domain/dto"
	"github.com/guttosm/cryptopulse/internal/ratelimit"
)

// RateLimit gates every request through the injected token-bucket limiter,
// keyed by client IP.
//
// Behavior:
//   - Consumes one token for the request's client IP.
//   - If no token is available, responds 429 Too Many Requests and aborts.
//
// The limiter is passed in explicitly rather than held in package state so
// its lifetime and configuration stay with the application wiring.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimit(limiter))
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.Allow(ip) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewCodedErrorResponse("TOO_MANY_REQUESTS", "rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
