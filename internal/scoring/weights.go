package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/vinothezhumalai/legalmcpserver/internal/models"
)

// WeightScheme is a versioned mapping of criterion to weight. Aggregation
// reads each metric's own Weight field, so alternate schemes can be
// substituted without touching the math.
type WeightScheme struct {
	Version        string
	Summarization  map[models.Criterion]float64
	Classification map[models.Criterion]float64
}

// DefaultWeights returns the fixed constant table: eight summarization
// criteria and six classification criteria, each group summing to 1.0.
func DefaultWeights() WeightScheme {
	return WeightScheme{
		Version: "v1",
		Summarization: map[models.Criterion]float64{
			models.CriterionFactualAccuracy:  0.20,
			models.CriterionCompleteness:     0.15,
			models.CriterionConciseness:      0.10,
			models.CriterionLegalPrecision:   0.20,
			models.CriterionKeyPointCoverage: 0.15,
			models.CriterionCoherence:        0.10,
			models.CriterionCitationFidelity: 0.05,
			models.CriterionNeutrality:       0.05,
		},
		Classification: map[models.Criterion]float64{
			models.CriterionAreaAccuracy:          0.30,
			models.CriterionConfidenceCalibration: 0.20,
			models.CriterionPrecedentRelevance:    0.15,
			models.CriterionJurisdictionFit:       0.15,
			models.CriterionSubAreaPrecision:      0.15,
			models.CriterionReasoningQuality:      0.05,
		},
	}
}

// SummarizationCriteria returns the scheme's summarization criteria in
// stable (sorted) order.
func (w WeightScheme) SummarizationCriteria() []models.Criterion {
	return sortedCriteria(w.Summarization)
}

// ClassificationCriteria returns the scheme's classification criteria in
// stable (sorted) order.
func (w WeightScheme) ClassificationCriteria() []models.Criterion {
	return sortedCriteria(w.Classification)
}

// Validate checks that each criteria group sums to 1.0 (±0.001) and that no
// weight is outside (0, 1].
func (w WeightScheme) Validate() error {
	for name, group := range map[string]map[models.Criterion]float64{
		"summarization":  w.Summarization,
		"classification": w.Classification,
	} {
		if len(group) == 0 {
			return fmt.Errorf("%s weights: empty criteria group", name)
		}
		sum := 0.0
		for c, v := range group {
			if v <= 0 || v > 1 {
				return fmt.Errorf("%s weights: %s weight %.4f outside (0, 1]", name, c, v)
			}
			sum += v
		}
		if math.Abs(sum-1.0) > 0.001 {
			return fmt.Errorf("%s weights sum to %.4f, must sum to 1.0", name, sum)
		}
	}
	return nil
}

func sortedCriteria(group map[models.Criterion]float64) []models.Criterion {
	out := make([]models.Criterion, 0, len(group))
	for c := range group {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
