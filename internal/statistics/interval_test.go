package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 7.0, Mean([]float64{7.0}))
	assert.InDelta(t, 7.5, Mean([]float64{6.0, 9.0}), 1e-9)
}

func TestMeanIntervalSingleScore(t *testing.T) {
	ci := MeanInterval([]float64{8.0}, 0.95)
	assert.Equal(t, 8.0, ci.Mean)
	assert.Equal(t, 8.0, ci.Lower)
	assert.Equal(t, 8.0, ci.Upper)
	assert.Equal(t, 0.95, ci.Level)
}

func TestMeanIntervalBoundsContainMean(t *testing.T) {
	scores := []float64{6.0, 7.0, 7.5, 8.0, 9.0}
	ci := MeanInterval(scores, 0.95)

	assert.InDelta(t, 7.5, ci.Mean, 1e-9)
	assert.LessOrEqual(t, ci.Lower, ci.Mean)
	assert.GreaterOrEqual(t, ci.Upper, ci.Mean)
	assert.GreaterOrEqual(t, ci.Lower, 6.0)
	assert.LessOrEqual(t, ci.Upper, 9.0)
}

func TestMeanIntervalDeterministic(t *testing.T) {
	scores := []float64{5.0, 6.5, 8.0, 9.5}
	first := MeanInterval(scores, 0.90)
	second := MeanInterval(scores, 0.90)
	assert.Equal(t, first, second)
}

func TestMeanIntervalIdenticalScoresCollapses(t *testing.T) {
	ci := MeanInterval([]float64{7.0, 7.0, 7.0}, 0.95)
	assert.Equal(t, 7.0, ci.Lower)
	assert.Equal(t, 7.0, ci.Upper)
}
