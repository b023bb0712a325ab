package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/moonveil/arcana-backend/internal/handlers"
	"github.com/moonveil/arcana-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware  *middleware.AuthMiddleware
	PatternHandler  *handlers.PatternHandler
	SnapshotHandler *handlers.SnapshotHandler
	AllowOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	// Patterns
	api.GET("/patterns", cfg.PatternHandler.GetPatterns)
	// Snapshots
	api.POST("/snapshots/:type/generate", cfg.SnapshotHandler.Generate)
	api.GET("/snapshots/current", cfg.SnapshotHandler.GetCurrent)
	api.GET("/snapshots/history", cfg.SnapshotHandler.GetHistory)
	// Data-subject deletion
	api.DELETE("/insights", cfg.SnapshotHandler.DeleteInsights)

	return router
}
