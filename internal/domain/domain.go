package domain

import (
	"github.com/moonveil/arcana-backend/internal/domain/activity"
	"github.com/moonveil/arcana-backend/internal/domain/cosmos"
	"github.com/moonveil/arcana-backend/internal/domain/insight"
)

type TarotPull = activity.TarotPull
type DrawnCard = activity.DrawnCard
type JournalEntry = activity.JournalEntry
type RawEvent = activity.RawEvent
type EventKind = activity.EventKind

type CosmicContext = cosmos.CosmicContext
type DailyContext = cosmos.DailyContext
type PlanetPosition = cosmos.PlanetPosition
type Aspect = cosmos.Aspect

type EnrichedEvent = insight.EnrichedEvent
type TimeWindow = insight.TimeWindow
type ConfidenceFactors = insight.ConfidenceFactors
type EntityCount = insight.EntityCount
type Pattern = insight.Pattern
type PatternData = insight.PatternData
type PatternType = insight.PatternType
type Tier = insight.Tier
type Category = insight.Category

type Snapshot = insight.Snapshot
type PatternSnapshot = insight.PatternSnapshot
type LifeThemeSnapshot = insight.LifeThemeSnapshot
type TarotSeasonSnapshot = insight.TarotSeasonSnapshot
type ArchetypeSnapshot = insight.ArchetypeSnapshot
type SnapshotEnvelope = insight.SnapshotEnvelope
type InsightSnapshot = insight.InsightSnapshot

var (
	EncodeSnapshot = insight.EncodeSnapshot
	DecodeSnapshot = insight.DecodeSnapshot
)

const (
	EventTarot   = activity.EventTarot
	EventJournal = activity.EventJournal

	TierFree    = insight.TierFree
	TierPremium = insight.TierPremium

	CategoryTarot   = insight.CategoryTarot
	CategoryJournal = insight.CategoryJournal

	PatternTarotMoonPhase   = insight.PatternTarotMoonPhase
	PatternEmotionMoonPhase = insight.PatternEmotionMoonPhase
	PatternInsufficientData = insight.PatternInsufficientData

	SnapshotTypePrefix       = insight.SnapshotTypePrefix
	SnapshotTarotMoonPhase   = insight.SnapshotTarotMoonPhase
	SnapshotEmotionMoonPhase = insight.SnapshotEmotionMoonPhase
	SnapshotLifeTheme        = insight.SnapshotLifeTheme
	SnapshotTarotSeason      = insight.SnapshotTarotSeason
	SnapshotArchetype        = insight.SnapshotArchetype
)
