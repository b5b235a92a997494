package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/token-resolver/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Resolution endpoints (public read access)
		v1.GET("/resolve", handler.ResolveToken)
		v1.GET("/pair", handler.ResolvePair)
		v1.GET("/stats", handler.GetStats)

		// Registry endpoints
		v1.POST("/tokens", middleware.Auth(authCfg), handler.AddToken)
		v1.GET("/tokens/resolve", handler.ResolveRegistrySymbol)
		v1.GET("/tokens/search", handler.SearchTokens)

		// Operational endpoints (requires authentication)
		v1.GET("/lookups/failed", middleware.Auth(authCfg), handler.ListFailedLookups)
	}
}
