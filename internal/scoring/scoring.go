package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/vinothezhumalai/legalmcpserver/internal/models"
)

// Score bounds for every metric.
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// ErrMalformedJudgment indicates the upstream judgment was missing a numeric
// score. The metric fails outright rather than defaulting to zero, since a
// silent zero would corrupt the weighted average undetected.
var ErrMalformedJudgment = errors.New("malformed judgment: score is missing or not numeric")

// ErrZeroWeight indicates an empty or zero-weight metric set was passed to
// the aggregator.
var ErrZeroWeight = errors.New("empty or zero-weight metric set")

// ClassifyTier maps a score onto one of the five quality tiers.
// Boundaries are inclusive on the lower end.
func ClassifyTier(score float64) models.Tier {
	switch {
	case score >= 9.0:
		return models.TierExcellent
	case score >= 7.5:
		return models.TierGood
	case score >= 6.0:
		return models.TierSatisfactory
	case score >= 4.0:
		return models.TierNeedsImprovement
	default:
		return models.TierPoor
	}
}

// RawJudgment is one per-criterion judgment as returned by the oracle.
// Score is left untyped because degenerate model responses sometimes carry
// strings or nulls where a number belongs.
type RawJudgment struct {
	Score    any      `json:"score"`
	Feedback string   `json:"feedback,omitempty"`
	Evidence []string `json:"evidence,omitempty"`
}

// NewMetricScore builds a MetricScore from a raw judgment and the fixed
// (category, weight) pair for its criterion. Out-of-range scores clamp into
// [MinScore, MaxScore]; non-numeric scores return ErrMalformedJudgment.
func NewMetricScore(category models.Criterion, weight float64, raw RawJudgment) (models.MetricScore, error) {
	score, err := numericScore(raw.Score)
	if err != nil {
		return models.MetricScore{}, fmt.Errorf("criterion %s: %w", category, err)
	}

	score = math.Max(MinScore, math.Min(MaxScore, score))

	evidence := raw.Evidence
	if evidence == nil {
		evidence = []string{}
	}

	return models.MetricScore{
		Category: category,
		Score:    score,
		Tier:     ClassifyTier(score),
		Weight:   weight,
		Feedback: raw.Feedback,
		Evidence: evidence,
	}, nil
}

// numericScore coerces the loosely-typed score field into a float64.
func numericScore(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, ErrMalformedJudgment
		}
		return f, nil
	default:
		return 0, ErrMalformedJudgment
	}
}

// WeightedAverage computes sum(score·weight)/sum(weight) over the metric
// set. The result is order-invariant. An empty set or a zero weight sum
// returns ErrZeroWeight instead of NaN.
func WeightedAverage(metrics []models.MetricScore) (float64, error) {
	weightedSum := 0.0
	totalWeight := 0.0
	for _, m := range metrics {
		weightedSum += m.Score * m.Weight
		totalWeight += m.Weight
	}
	if totalWeight == 0 {
		return 0, ErrZeroWeight
	}
	return weightedSum / totalWeight, nil
}

// CountTiers tallies metrics per tier. The counts always sum to len(metrics).
func CountTiers(metrics []models.MetricScore) models.AggregateMetrics {
	var agg models.AggregateMetrics
	for _, m := range metrics {
		switch m.Tier {
		case models.TierExcellent:
			agg.Excellent++
		case models.TierGood:
			agg.Good++
		case models.TierSatisfactory:
			agg.Satisfactory++
		case models.TierNeedsImprovement:
			agg.NeedsImprovement++
		default:
			agg.Poor++
		}
	}
	return agg
}
