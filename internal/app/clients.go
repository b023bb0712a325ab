package app

import (
	"fmt"
	"os"
	"strings"

	redisclients "github.com/moonveil/arcana-backend/internal/clients/redis"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

type Clients struct {
	SessionCache redisclients.SessionCache
}

// wireClients builds optional external clients. The session cache is
// skipped when no redis address is configured; handlers treat a nil
// cache as a permanent miss.
func wireClients(log *logger.Logger) (Clients, error) {
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) == "" {
		log.Info("REDIS_ADDR not set, running without session cache")
		return Clients{}, nil
	}
	cache, err := redisclients.NewSessionCache(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init session cache: %w", err)
	}
	return Clients{SessionCache: cache}, nil
}
