package app

import (
	"github.com/gin-gonic/gin"

	"github.com/moonveil/arcana-backend/internal/handlers"
	"github.com/moonveil/arcana-backend/internal/middleware"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
	"github.com/moonveil/arcana-backend/internal/server"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

type Handlers struct {
	Pattern  *handlers.PatternHandler
	Snapshot *handlers.SnapshotHandler
}

func wireHandlers(log *logger.Logger, services Services, clients Clients) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Pattern:  handlers.NewPatternHandler(services.Pattern, clients.SessionCache),
		Snapshot: handlers.NewSnapshotHandler(services.Snapshot, clients.SessionCache),
	}
}

func wireMiddleware(log *logger.Logger, cfg *Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, cfg.JWTSecretKey),
	}
}

func wireRouter(cfg *Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:  middlewareset.Auth,
		PatternHandler:  handlerset.Pattern,
		SnapshotHandler: handlerset.Snapshot,
		AllowOrigins:    cfg.AllowOrigins,
	})
}
