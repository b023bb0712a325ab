package app

import (
	"gorm.io/gorm"

	activityrepos "github.com/moonveil/arcana-backend/internal/data/repos/activity"
	cosmosrepos "github.com/moonveil/arcana-backend/internal/data/repos/cosmos"
	insightrepos "github.com/moonveil/arcana-backend/internal/data/repos/insight"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

type Repos struct {
	TarotPull    activityrepos.TarotPullRepo
	JournalEntry activityrepos.JournalEntryRepo
	DailyContext cosmosrepos.DailyContextRepo
	Snapshot     insightrepos.SnapshotRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		TarotPull:    activityrepos.NewTarotPullRepo(db, log),
		JournalEntry: activityrepos.NewJournalEntryRepo(db, log),
		DailyContext: cosmosrepos.NewDailyContextRepo(db, log),
		Snapshot:     insightrepos.NewSnapshotRepo(db, log),
	}
}
