// Package statistics provides the resampling math behind trend
// confidence reporting. Overall scores arrive a handful at a time, so a
// bootstrap percentile interval is used instead of a normal
// approximation.
package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// Interval is a confidence interval around the mean of a score sample.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Mean  float64 `json:"mean"`
	Level float64 `json:"level"`
}

const resamples = 2000

// Resampling is seeded deterministically so repeated trend queries over
// the same history report the same interval.
const intervalSeed = 1

// MeanInterval computes a bootstrap confidence interval for the mean of
// scores at the given level, e.g. 0.95. With fewer than two scores the
// interval collapses to the mean.
func MeanInterval(scores []float64, level float64) Interval {
	m := Mean(scores)
	n := len(scores)
	if n < 2 {
		return Interval{Lower: m, Upper: m, Mean: m, Level: level}
	}

	rng := rand.New(rand.NewSource(intervalSeed))
	means := make([]float64, resamples)
	sample := make([]float64, n)
	for i := range means {
		for j := range sample {
			sample[j] = scores[rng.Intn(n)]
		}
		means[i] = Mean(sample)
	}
	sort.Float64s(means)

	alpha := 1 - level
	lo := int(math.Floor(alpha / 2 * resamples))
	hi := int(math.Floor((1 - alpha/2) * resamples))
	if hi >= resamples {
		hi = resamples - 1
	}

	return Interval{Lower: means[lo], Upper: means[hi], Mean: m, Level: level}
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
