package app

import (
	"fmt"

	"github.com/moonveil/arcana-backend/internal/cosmic/detect"
	"github.com/moonveil/arcana-backend/internal/cosmic/enrich"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
	"github.com/moonveil/arcana-backend/internal/services"
)

type Services struct {
	Crypto   services.CryptoService
	Pattern  services.PatternService
	Snapshot services.SnapshotService
}

func wireServices(log *logger.Logger, cfg *Config, repos Repos) (Services, error) {
	log.Info("Wiring services...")

	crypto, err := services.NewCryptoService(cfg.SnapshotSecret)
	if err != nil {
		return Services{}, fmt.Errorf("init crypto service: %w", err)
	}

	source := services.NewActivityEventSource(repos.TarotPull, repos.JournalEntry)
	enricher := enrich.NewEnricher(repos.DailyContext, log)

	detection := &cfg.Detection
	orch := detect.NewOrchestrator(detection, source, enricher, log)

	snapshotService := services.NewSnapshotService(detection, repos.Snapshot, crypto, source, log)

	return Services{
		Crypto:   crypto,
		Pattern:  services.NewPatternService(orch, snapshotService, log),
		Snapshot: snapshotService,
	}, nil
}
