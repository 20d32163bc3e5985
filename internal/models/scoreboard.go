package models

import "time"

// Tier is one of five ordered quality bands assigned to a score.
type Tier string

const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierSatisfactory     Tier = "satisfactory"
	TierNeedsImprovement Tier = "needs_improvement"
	TierPoor             Tier = "poor"
)

var tierRank = map[Tier]int{
	TierPoor:             0,
	TierNeedsImprovement: 1,
	TierSatisfactory:     2,
	TierGood:             3,
	TierExcellent:        4,
}

func (t Tier) String() string {
	return string(t)
}

// AtLeast returns true if t is at or above the target tier.
func (t Tier) AtLeast(target Tier) bool {
	return tierRank[t] >= tierRank[target]
}

// ParseTier converts a string flag value to a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierExcellent, TierGood, TierSatisfactory, TierNeedsImprovement, TierPoor:
		return Tier(s), nil
	default:
		return TierPoor, &UnknownTierError{Value: s}
	}
}

// UnknownTierError reports an unrecognized tier name.
type UnknownTierError struct {
	Value string
}

func (e *UnknownTierError) Error() string {
	return "unknown tier " + e.Value + ": must be excellent, good, satisfactory, needs_improvement, or poor"
}

// Criterion identifies one evaluable dimension of analysis quality.
type Criterion string

// Summarization criteria.
const (
	CriterionFactualAccuracy  Criterion = "factual_accuracy"
	CriterionCompleteness     Criterion = "completeness"
	CriterionConciseness      Criterion = "conciseness"
	CriterionLegalPrecision   Criterion = "legal_precision"
	CriterionKeyPointCoverage Criterion = "key_point_coverage"
	CriterionCoherence        Criterion = "coherence"
	CriterionCitationFidelity Criterion = "citation_fidelity"
	CriterionNeutrality       Criterion = "neutrality"
)

// Classification criteria.
const (
	CriterionAreaAccuracy          Criterion = "area_accuracy"
	CriterionConfidenceCalibration Criterion = "confidence_calibration"
	CriterionPrecedentRelevance    Criterion = "precedent_relevance"
	CriterionJurisdictionFit       Criterion = "jurisdiction_fit"
	CriterionSubAreaPrecision      Criterion = "sub_area_precision"
	CriterionReasoningQuality      Criterion = "reasoning_quality"
)

// MetricScore is a single graded judgment for one criterion. The tier is
// always derived from the score; callers never set it independently.
type MetricScore struct {
	Category Criterion `json:"category"`
	Score    float64   `json:"score"`
	Tier     Tier      `json:"tier"`
	Weight   float64   `json:"weight"`
	Feedback string    `json:"feedback"`
	Evidence []string  `json:"evidence"`
}

// AggregateMetrics tallies how many metrics landed in each tier.
type AggregateMetrics struct {
	Excellent        int `json:"excellent"`
	Good             int `json:"good"`
	Satisfactory     int `json:"satisfactory"`
	NeedsImprovement int `json:"needs_improvement"`
	Poor             int `json:"poor"`
}

// Total returns the sum of all tier counts.
func (a AggregateMetrics) Total() int {
	return a.Excellent + a.Good + a.Satisfactory + a.NeedsImprovement + a.Poor
}

// BenchmarkComparison relates an overall score to the fixed industry baseline.
type BenchmarkComparison struct {
	PercentAboveAverage float64 `json:"percent_above_industry_average"`
	Percentile          int     `json:"percentile"`
	Standing            string  `json:"standing"`
}

// QualityFlags carries advisory findings attached to a scoreboard.
// PotentialErrors, Inconsistencies, and MissingElements are reserved
// extension points and are always empty today.
type QualityFlags struct {
	PotentialErrors  []string `json:"potential_errors"`
	Inconsistencies  []string `json:"inconsistencies"`
	MissingElements  []string `json:"missing_elements"`
	ConfidenceIssues []string `json:"confidence_issues"`
}

// Scoreboard is the full structured grading result for one document
// evaluation. It is immutable after construction.
type Scoreboard struct {
	DocumentID           string                    `json:"document_id"`
	Timestamp            time.Time                 `json:"timestamp"`
	OverallScore         float64                   `json:"overall_score"`
	OverallTier          Tier                      `json:"overall_tier"`
	SummarizationScores  map[Criterion]MetricScore `json:"summarization_scores"`
	ClassificationScores map[Criterion]MetricScore `json:"classification_scores"`
	AggregateMetrics     AggregateMetrics          `json:"aggregate_metrics"`
	Strengths            []string                  `json:"strengths"`
	Weaknesses           []string                  `json:"weaknesses"`
	Recommendations      []string                  `json:"recommendations"`
	Benchmark            *BenchmarkComparison      `json:"benchmark_comparison,omitempty"`
	QualityFlags         QualityFlags              `json:"quality_flags"`
}

// Metrics returns every metric on the scoreboard as a flat list
// (summarization and classification combined, no defined order).
func (s *Scoreboard) Metrics() []MetricScore {
	out := make([]MetricScore, 0, len(s.SummarizationScores)+len(s.ClassificationScores))
	for _, m := range s.SummarizationScores {
		out = append(out, m)
	}
	for _, m := range s.ClassificationScores {
		out = append(out, m)
	}
	return out
}

// TrendDirection describes how overall scores have moved across
// recent evaluations.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// TrendReport summarizes recent score movement from the in-memory history.
type TrendReport struct {
	Direction     TrendDirection `json:"direction"`
	PercentChange float64        `json:"percent_change"`
	Evaluations   int            `json:"evaluations"`
	MeanScore     float64        `json:"mean_score"`
	// Confidence is a bootstrap interval around the mean score. It is
	// omitted until at least two evaluations have been recorded.
	Confidence *ScoreConfidence `json:"confidence,omitempty"`
}

// ScoreConfidence bounds the mean overall score at a confidence level.
type ScoreConfidence struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}
