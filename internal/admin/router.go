package admin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/payflow-importer/internal/admin/handler"
	"github.com/payflow-importer/internal/admin/middleware"
)

// setupRouter configures API routes and middleware for the admin server
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	tenantHandler *handler.TenantHandler,
	runHandler *handler.RunHandler,
	importHandler *handler.ImportHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Tenant configuration
		tenants := v1.Group("/tenants")
		{
			tenants.GET("", tenantHandler.List)
			tenants.GET("/:id", tenantHandler.GetByID)
			tenants.PUT("/:id", tenantHandler.Upsert)
			tenants.GET("/:id/journals", tenantHandler.ListJournals)
		}

		// Run history and manual imports
		v1.GET("/runs", runHandler.List)
		v1.POST("/imports", importHandler.Trigger)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
