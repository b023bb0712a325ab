package app

import (
	"strings"

	"github.com/moonveil/arcana-backend/internal/cosmic"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
	"github.com/moonveil/arcana-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	SnapshotSecret string
	AllowOrigins   []string
	Detection      cosmic.Config
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	snapshotSecret := utils.GetEnv("SNAPSHOT_SECRET_KEY", jwtSecretKey, log)
	origins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	detection := cosmic.DefaultConfig()
	detection.MinConfidence = utils.GetEnvAsFloat("DETECT_MIN_CONFIDENCE", detection.MinConfidence, log)
	detection.MinOccurrences = utils.GetEnvAsInt("DETECT_MIN_OCCURRENCES", detection.MinOccurrences, log)
	detection.DefaultDaysBack = utils.GetEnvAsInt("DETECT_DEFAULT_DAYS_BACK", detection.DefaultDaysBack, log)
	detection.MaxPatterns = utils.GetEnvAsInt("DETECT_MAX_PATTERNS", detection.MaxPatterns, log)

	return Config{
		JWTSecretKey:   jwtSecretKey,
		SnapshotSecret: snapshotSecret,
		AllowOrigins:   origins,
		Detection:      detection,
	}
}
