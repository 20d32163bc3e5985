package scoring

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinothezhumalai/legalmcpserver/internal/models"
)

func TestClassifyTier_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  models.Tier
	}{
		{"bottom of range", 0.0, models.TierPoor},
		{"just below needs improvement", 3.999, models.TierPoor},
		{"needs improvement lower bound", 4.0, models.TierNeedsImprovement},
		{"just below satisfactory", 5.999, models.TierNeedsImprovement},
		{"satisfactory lower bound", 6.0, models.TierSatisfactory},
		{"just below good", 7.499, models.TierSatisfactory},
		{"good lower bound", 7.5, models.TierGood},
		{"just below excellent", 8.999, models.TierGood},
		{"excellent lower bound", 9.0, models.TierExcellent},
		{"top of range", 10.0, models.TierExcellent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ClassifyTier(tt.score))
		})
	}
}

func TestClassifyTier_PartitionsRange(t *testing.T) {
	// Every score in [0,10] maps to exactly one tier: sweeping in fine steps
	// must never observe a gap (ClassifyTier is total by construction, so a
	// gap would show up as an unknown tier value).
	known := map[models.Tier]bool{
		models.TierExcellent:        true,
		models.TierGood:             true,
		models.TierSatisfactory:     true,
		models.TierNeedsImprovement: true,
		models.TierPoor:             true,
	}
	for s := 0.0; s <= 10.0; s += 0.001 {
		require.True(t, known[ClassifyTier(s)], "score %f", s)
	}
}

func TestNewMetricScore_ClampsHigh(t *testing.T) {
	m, err := NewMetricScore(models.CriterionFactualAccuracy, 0.2, RawJudgment{Score: 15.0})
	require.NoError(t, err)
	assert.Equal(t, 10.0, m.Score)
	assert.Equal(t, models.TierExcellent, m.Tier)
}

func TestNewMetricScore_ClampsLow(t *testing.T) {
	m, err := NewMetricScore(models.CriterionCoherence, 0.1, RawJudgment{Score: -3.0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Score)
	assert.Equal(t, models.TierPoor, m.Tier)
}

func TestNewMetricScore_Defaults(t *testing.T) {
	m, err := NewMetricScore(models.CriterionNeutrality, 0.05, RawJudgment{Score: 8.0})
	require.NoError(t, err)
	assert.Equal(t, "", m.Feedback)
	assert.NotNil(t, m.Evidence)
	assert.Empty(t, m.Evidence)
	assert.Equal(t, models.TierGood, m.Tier)
	assert.Equal(t, 0.05, m.Weight)
}

func TestNewMetricScore_MalformedScore(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"missing", nil},
		{"string", "excellent"},
		{"bool", true},
		{"object", map[string]any{"value": 9}},
		{"bad json number", json.Number("not-a-number")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMetricScore(models.CriterionAreaAccuracy, 0.3, RawJudgment{Score: tt.raw})
			require.ErrorIs(t, err, ErrMalformedJudgment)
			assert.Contains(t, err.Error(), string(models.CriterionAreaAccuracy))
		})
	}
}

func TestNewMetricScore_JSONNumber(t *testing.T) {
	m, err := NewMetricScore(models.CriterionCompleteness, 0.15, RawJudgment{Score: json.Number("7.5")})
	require.NoError(t, err)
	assert.Equal(t, 7.5, m.Score)
	assert.Equal(t, models.TierGood, m.Tier)
}

func TestWeightedAverage_EqualWeightsIsMean(t *testing.T) {
	scores := []float64{9, 4, 7, 10, 0, 6.5}
	var metrics []models.MetricScore
	sum := 0.0
	for _, s := range scores {
		metrics = append(metrics, models.MetricScore{Score: s, Weight: 0.25})
		sum += s
	}

	got, err := WeightedAverage(metrics)
	require.NoError(t, err)
	assert.InDelta(t, sum/float64(len(scores)), got, 1e-9)
}

func TestWeightedAverage_OrderInvariant(t *testing.T) {
	metrics := allNinesMetrics(t)
	metrics[3].Score = 2.0
	metrics[9].Score = 6.5

	want, err := WeightedAverage(metrics)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.MetricScore, len(metrics))
		copy(shuffled, metrics)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got, err := WeightedAverage(shuffled)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9)
	}
}

func TestWeightedAverage_EmptySet(t *testing.T) {
	_, err := WeightedAverage(nil)
	require.ErrorIs(t, err, ErrZeroWeight)
}

func TestWeightedAverage_ZeroWeights(t *testing.T) {
	metrics := []models.MetricScore{
		{Score: 9, Weight: 0},
		{Score: 7, Weight: 0},
	}
	_, err := WeightedAverage(metrics)
	require.ErrorIs(t, err, ErrZeroWeight)
}

func TestWeightedAverage_AllNinesScenario(t *testing.T) {
	// Scores of 9 across all 14 criteria must aggregate to exactly 9.0.
	metrics := allNinesMetrics(t)
	got, err := WeightedAverage(metrics)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, got, 1e-9)
	assert.Equal(t, models.TierExcellent, ClassifyTier(got))

	agg := CountTiers(metrics)
	assert.Equal(t, 14, agg.Excellent)
	assert.Equal(t, 14, agg.Total())
}

func TestCountTiers_SumsToMetricCount(t *testing.T) {
	metrics := []models.MetricScore{
		{Tier: models.TierExcellent},
		{Tier: models.TierGood},
		{Tier: models.TierGood},
		{Tier: models.TierSatisfactory},
		{Tier: models.TierNeedsImprovement},
		{Tier: models.TierPoor},
		{Tier: models.TierPoor},
	}
	agg := CountTiers(metrics)
	assert.Equal(t, len(metrics), agg.Total())
	assert.Equal(t, 1, agg.Excellent)
	assert.Equal(t, 2, agg.Good)
	assert.Equal(t, 1, agg.Satisfactory)
	assert.Equal(t, 1, agg.NeedsImprovement)
	assert.Equal(t, 2, agg.Poor)
}

func TestDefaultWeights_Valid(t *testing.T) {
	scheme := DefaultWeights()
	require.NoError(t, scheme.Validate())
	assert.Len(t, scheme.Summarization, 8)
	assert.Len(t, scheme.Classification, 6)
}

func TestWeightScheme_Validate(t *testing.T) {
	scheme := DefaultWeights()
	scheme.Summarization[models.CriterionFactualAccuracy] = 0.5
	assert.Error(t, scheme.Validate())

	scheme = DefaultWeights()
	scheme.Classification[models.CriterionAreaAccuracy] = -0.3
	assert.Error(t, scheme.Validate())

	scheme = DefaultWeights()
	scheme.Summarization = map[models.Criterion]float64{}
	assert.Error(t, scheme.Validate())
}

func TestWeightScheme_StableCriteriaOrder(t *testing.T) {
	scheme := DefaultWeights()
	first := scheme.SummarizationCriteria()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, scheme.SummarizationCriteria())
	}
	assert.Len(t, scheme.ClassificationCriteria(), 6)
}

// allNinesMetrics builds the full 14-criterion metric set with every score
// at 9.0, using the default weight tables.
func allNinesMetrics(t *testing.T) []models.MetricScore {
	t.Helper()
	scheme := DefaultWeights()
	var metrics []models.MetricScore
	for c, w := range scheme.Summarization {
		m, err := NewMetricScore(c, w, RawJudgment{Score: 9.0})
		require.NoError(t, err)
		metrics = append(metrics, m)
	}
	for c, w := range scheme.Classification {
		m, err := NewMetricScore(c, w, RawJudgment{Score: 9.0})
		require.NoError(t, err)
		metrics = append(metrics, m)
	}
	require.Len(t, metrics, 14)
	return metrics
}
