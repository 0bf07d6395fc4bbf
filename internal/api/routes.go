package api

import (
	"github.com/gin-gonic/gin"

	"astro-report-service/internal/auth"
	"astro-report-service/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(handlers *Handlers, jwtService *auth.JWTService) *gin.Engine {
	router := gin.Default()

	// Add CORS middleware
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		// All report routes require an authenticated user
		reports := api.Group("/reports")
		reports.Use(middleware.RequireAuth(jwtService))
		{
			reports.POST("/kundali", handlers.GenerateKundaliHandler)
			reports.POST("/palmistry", handlers.SchedulePalmistryHandler)
			reports.POST("/numerology", handlers.ScheduleNumerologyHandler)
			reports.GET("/:reportId", handlers.GetReportStatusHandler)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
