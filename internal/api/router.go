package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/cryptopulse/internal/middleware"
	"github.com/guttosm/cryptopulse/internal/ratelimit"
)

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected
// and the rate limiter that gates every query endpoint.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, RateLimit).
//   - Adds request timeout handling (10 seconds).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1/cryptos).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The HTTP handler with business logic.
//   - limiter (*ratelimit.Limiter): Token-bucket admission control per client IP.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, limiter *ratelimit.Limiter) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimit(limiter),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		cryptos := v1.Group("/cryptos")
		cryptos.GET("/normalized-range", handler.GetNormalizedRanges)
		cryptos.GET("/highest-normalized-range", handler.GetHighestNormalizedRange)
		cryptos.GET("/:symbol/stats", handler.GetStats)
	}

	return router
}
