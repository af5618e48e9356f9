package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prateleira/backend/config"
)

// SetupRouter creates and configures the Gin router. limiter may be nil to
// disable rate limiting; the caller owns it and stops it on shutdown.
func SetupRouter(cfg *config.Config, handler *Handler, limiter *IPRateLimiter, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(limiter))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("/group", handler.GroupProducts)
			products.POST("/canonical", handler.CanonicalKey)
		}
	}

	return router
}
