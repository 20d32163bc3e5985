package benchmark

import (
	"math"

	"github.com/vinothezhumalai/legalmcpserver/internal/models"
)

// IndustryAverage is the fixed reference score representing assumed
// industry-average analysis quality.
const IndustryAverage = 7.2

// Standing labels for the qualitative comparison.
const (
	StandingAboveAverage = "above average"
	StandingBelowAverage = "below average"
)

// Compare relates an overall score to the industry baseline.
//
// The percentile is derived from the score alone as round(score/10*100),
// then clamped into [1, 99] so the result never claims absolute best or
// worst. A score exactly equal to the baseline is labeled below average;
// the strict inequality is a deliberate tie-break.
func Compare(overallScore float64) models.BenchmarkComparison {
	percentAbove := (overallScore - IndustryAverage) / IndustryAverage * 100

	percentile := int(math.Round(overallScore / 10 * 100))
	if percentile < 1 {
		percentile = 1
	}
	if percentile > 99 {
		percentile = 99
	}

	standing := StandingBelowAverage
	if overallScore > IndustryAverage {
		standing = StandingAboveAverage
	}

	return models.BenchmarkComparison{
		PercentAboveAverage: percentAbove,
		Percentile:          percentile,
		Standing:            standing,
	}
}
