package http

import (
	"github.com/gin-gonic/gin"
	"github.com/tableorder/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API routes consumed by the ordering UI
	api := router.Group("/api")
	{
		api.GET("/menu", handler.GetMenu)
		api.GET("/menu/category/:category", handler.GetMenuByCategory)

		api.POST("/orders", handler.CreateOrder)
		api.GET("/orders/:id", handler.GetOrder)
	}

	return router
}
