// Package cosmic holds the tunable configuration shared by the pattern
// detection engine: scoring weights, acceptance thresholds, orchestration
// limits and persistence horizons. One Config is built at startup and
// passed by reference into the scorer, orchestrator and snapshot service
// so tests can run the engine under alternate tunings.
package cosmic

import "time"

type Config struct {
	// Scoring weights and caps.
	RatioWeight        float64
	BaseFrequencyCap   float64
	SampleSizeDivisor  float64
	SampleSizeCap      float64
	ShortWindowPenalty float64
	MinWindowDays      int
	ChiSquaredWeight   float64
	ChiSquaredCap      float64
	MinExpectedCount   float64

	// Acceptance floors. A candidate below either never becomes a pattern.
	MinConfidence  float64
	MinOccurrences int

	// Orchestration.
	DefaultDaysBack  int
	MaxPatterns      int
	MinTarotEvents   int
	MinJournalEvents int
	MinBucketSize    int

	// Persistence horizons.
	SnapshotRetention time.Duration
	RegenerateAfter   time.Duration
	RefreshCooldown   time.Duration
}

func DefaultConfig() Config {
	return Config{
		RatioWeight:        0.3,
		BaseFrequencyCap:   0.45,
		SampleSizeDivisor:  20,
		SampleSizeCap:      0.25,
		ShortWindowPenalty: 0.15,
		MinWindowDays:      14,
		ChiSquaredWeight:   0.05,
		ChiSquaredCap:      0.2,
		MinExpectedCount:   1,

		MinConfidence:  0.6,
		MinOccurrences: 3,

		DefaultDaysBack:  90,
		MaxPatterns:      10,
		MinTarotEvents:   5,
		MinJournalEvents: 3,
		MinBucketSize:    3,

		SnapshotRetention: 30 * 24 * time.Hour,
		RegenerateAfter:   7 * 24 * time.Hour,
		RefreshCooldown:   6 * time.Hour,
	}
}
