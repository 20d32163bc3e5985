package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vinothezhumalai/legalmcpserver/internal/models"
	"github.com/vinothezhumalai/legalmcpserver/internal/orchestration"
)

func sampleReport() *orchestration.EvaluationReport {
	return &orchestration.EvaluationReport{
		Scoreboard: &models.Scoreboard{
			DocumentID:   "doc_20260827120000_abcd1234",
			Timestamp:    time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
			OverallScore: 8.2,
			OverallTier:  models.TierGood,
			SummarizationScores: map[models.Criterion]models.MetricScore{
				models.CriterionFactualAccuracy: {
					Category: models.CriterionFactualAccuracy,
					Score:    9.5,
					Tier:     models.TierExcellent,
					Weight:   0.20,
					Feedback: "No factual drift detected.",
				},
				models.CriterionConciseness: {
					Category: models.CriterionConciseness,
					Score:    3.0,
					Tier:     models.TierPoor,
					Weight:   0.10,
					Feedback: "Summary repeats whole clauses.",
				},
			},
			ClassificationScores: map[models.Criterion]models.MetricScore{
				models.CriterionAreaAccuracy: {
					Category: models.CriterionAreaAccuracy,
					Score:    8.0,
					Tier:     models.TierGood,
					Weight:   0.30,
				},
			},
			AggregateMetrics: models.AggregateMetrics{Excellent: 1, Good: 1, Poor: 1},
			Strengths:        []string{"Excellent factual_accuracy (9.5/10)"},
			Weaknesses:       []string{"conciseness scored 3.0/10"},
			Recommendations:  []string{"Improve conciseness: scored 3.0, target at least 6.0"},
			Benchmark: &models.BenchmarkComparison{
				PercentAboveAverage: 13.9,
				Percentile:          82,
				Standing:            "above average",
			},
			QualityFlags: models.QualityFlags{
				ConfidenceIssues: []string{"classification confidence 0.55 is below the 0.60 threshold"},
			},
		},
		PercentChangeFromPrevious: 5.1,
	}
}

func TestFormatScoreboardReport(t *testing.T) {
	out := FormatScoreboardReport(sampleReport())

	assert.Contains(t, out, "## Legal Analysis Quality Report")
	assert.Contains(t, out, "doc_20260827120000_abcd1234")
	assert.Contains(t, out, "**Overall:** ✅ 8.20/10 (good)")
	assert.Contains(t, out, "**Change:** +5.1%")
	assert.Contains(t, out, "**Benchmark:** +13.9% vs industry average, percentile 82, above average")
	assert.Contains(t, out, "1 excellent, 1 good, 0 satisfactory, 0 needs improvement, 1 poor")

	// Table rows carry score, tier, and weight per criterion.
	assert.Contains(t, out, "| factual_accuracy | 9.5 | ✅ excellent | 20% |")
	assert.Contains(t, out, "| conciseness | 3.0 | ❌ poor | 10% |")
	assert.Contains(t, out, "| area_accuracy | 8.0 | ✅ good | 30% |")

	assert.Contains(t, out, "### Strengths")
	assert.Contains(t, out, "- Excellent factual_accuracy (9.5/10)")
	assert.Contains(t, out, "### Recommendations")
	assert.Contains(t, out, "### Confidence Issues")
	assert.Contains(t, out, "below the 0.60 threshold")
}

func TestFormatScoreboardReportSortsCriteria(t *testing.T) {
	out := FormatScoreboardReport(sampleReport())

	// Summarization rows are alphabetical within their section.
	conciseness := strings.Index(out, "| conciseness |")
	factual := strings.Index(out, "| factual_accuracy |")
	assert.Less(t, conciseness, factual)
}

func TestFormatScoreboardReportOmitsEmptySections(t *testing.T) {
	report := sampleReport()
	report.Scoreboard.Benchmark = nil
	report.Scoreboard.Weaknesses = nil
	report.Scoreboard.QualityFlags.ConfidenceIssues = nil
	report.PercentChangeFromPrevious = 0

	out := FormatScoreboardReport(report)

	assert.NotContains(t, out, "**Benchmark:**")
	assert.NotContains(t, out, "**Change:**")
	assert.NotContains(t, out, "### Weaknesses")
	assert.NotContains(t, out, "### Confidence Issues")
}
