package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/cardsheet-api/api/health"
	"github.com/killallgit/cardsheet-api/api/search"
	"github.com/killallgit/cardsheet-api/api/types"
	"github.com/killallgit/cardsheet-api/api/version"
	_ "github.com/killallgit/cardsheet-api/docs/swagger"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, limiters *clientLimiters) error {
	if deps == nil {
		return fmt.Errorf("route dependencies are required")
	}

	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")

	// Every search costs several upstream requests, so it is limited per client
	searchGroup := v1.Group("/search")
	if cfg := deps.Config; cfg != nil && cfg.RateLimiting.Enabled && cfg.RateLimiting.RequestsPerSecond > 0 {
		searchGroup.Use(limiters.PerClientRateLimit(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.Burst))
	}
	search.RegisterRoutes(searchGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  types.StatusError,
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
