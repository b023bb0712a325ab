// Package stats provides the pure statistical primitives behind
// confidence scoring. No state, no I/O.
package stats

// FrequencyRatio compares the observed rate against an expected
// frequency. 1.0 means the bucket occurred exactly as often as expected;
// 2.0 means twice as often. Degenerate inputs yield 0.
func FrequencyRatio(observed, total int, expectedFrequency float64) float64 {
	if total <= 0 || expectedFrequency <= 0 {
		return 0
	}
	return (float64(observed) / float64(total)) / expectedFrequency
}

// PercentageDeviation is the percent difference between the observed rate
// and the expected rate, normalized by the expected rate. Positive means
// over-represented.
func PercentageDeviation(observed, total int, expectedFrequency float64) float64 {
	if total <= 0 || expectedFrequency <= 0 {
		return 0
	}
	actual := float64(observed) / float64(total)
	return (actual - expectedFrequency) / expectedFrequency * 100
}

// ChiSquared is the single-cell chi-squared statistic
// (observed-expected)^2/expected with expected = total*expectedFrequency.
// Returns 0 when the expected count falls below minExpected: on sparse
// data the statistic explodes and says nothing.
func ChiSquared(observed, total int, expectedFrequency, minExpected float64) float64 {
	expected := float64(total) * expectedFrequency
	if expected < minExpected {
		return 0
	}
	diff := float64(observed) - expected
	return diff * diff / expected
}

// NormalizeConfidence clamps a raw additive score into [0, 1].
func NormalizeConfidence(raw float64) float64 {
	if raw < 0 {
		return 0
	}
	if raw > 1 {
		return 1
	}
	return raw
}
