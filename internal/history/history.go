// Package history keeps the process-lifetime record of past scoreboards and
// derives trend figures from it. Retention is a bounded ring: once capacity
// is reached the oldest scoreboard is evicted. Nothing is persisted across
// restarts.
package history

import (
	"errors"
	"sync"

	"github.com/vinothezhumalai/legalmcpserver/internal/models"
	"github.com/vinothezhumalai/legalmcpserver/internal/statistics"
)

// DefaultCapacity is the retention bound applied when no explicit capacity
// is configured.
const DefaultCapacity = 100

// trendThreshold is the relative change beyond which scores count as moving.
const trendThreshold = 0.05

// confidenceLevel is the level of the bootstrap interval attached to
// trend reports.
const confidenceLevel = 0.95

// ErrZeroPreviousScore indicates a percent-change computation against a
// previous overall score of exactly zero.
var ErrZeroPreviousScore = errors.New("degenerate history: previous overall score is zero")

// ErrNotFound is returned when a document ID matches no recorded scoreboard.
var ErrNotFound = errors.New("scoreboard not found")

// Tracker is an append-only, bounded record of past scoreboards. Appends
// happen in request-completion order; the mutex makes concurrent evaluations
// safe without imposing an issue-order.
type Tracker struct {
	mu       sync.Mutex
	capacity int
	entries  []*models.Scoreboard
}

// NewTracker creates a tracker retaining at most capacity scoreboards.
// A non-positive capacity selects DefaultCapacity.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Tracker{capacity: capacity}
}

// Record appends a completed scoreboard, evicting the oldest entry when the
// ring is full.
func (t *Tracker) Record(sb *models.Scoreboard) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, sb)
	if len(t.entries) > t.capacity {
		t.entries = t.entries[len(t.entries)-t.capacity:]
	}
}

// Len returns the number of retained scoreboards.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Recent returns up to n retained scoreboards, oldest first. n <= 0 returns
// everything retained.
func (t *Tracker) Recent(n int) []*models.Scoreboard {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n <= 0 || n > len(t.entries) {
		n = len(t.entries)
	}
	out := make([]*models.Scoreboard, n)
	copy(out, t.entries[len(t.entries)-n:])
	return out
}

// Get returns the retained scoreboard with the given document ID.
func (t *Tracker) Get(documentID string) (*models.Scoreboard, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].DocumentID == documentID {
			return t.entries[i], nil
		}
	}
	return nil, ErrNotFound
}

// PercentChange compares the current overall score against the most recently
// recorded one. The first-ever evaluation (no prior entries) yields 0. A
// previous score of exactly zero is a degenerate denominator and fails with
// ErrZeroPreviousScore rather than producing Inf.
func (t *Tracker) PercentChange(current float64) (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) == 0 {
		return 0, nil
	}
	previous := t.entries[len(t.entries)-1].OverallScore
	if previous == 0 {
		return 0, ErrZeroPreviousScore
	}
	return (current - previous) / previous * 100, nil
}

// TrendDirection reports how overall scores have moved across the last three
// recorded evaluations. Fewer than three entries report stable, as does a
// zero-valued oldest reference score, which would make the relative change
// undefined.
func (t *Tracker) TrendDirection() models.TrendDirection {
	t.mu.Lock()
	scores := t.scoresLocked()
	t.mu.Unlock()
	return directionOf(scores)
}

// directionOf derives the direction from a score snapshot, so callers that
// also report other figures from the same snapshot stay consistent.
func directionOf(scores []float64) models.TrendDirection {
	n := len(scores)
	if n < 3 {
		return models.TrendStable
	}
	oldest := scores[n-3]
	latest := scores[n-1]
	if oldest == 0 {
		return models.TrendStable
	}

	change := (latest - oldest) / oldest
	switch {
	case change > trendThreshold:
		return models.TrendImproving
	case change < -trendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// scoresLocked copies the overall scores in recording order. Callers hold
// the mutex.
func (t *Tracker) scoresLocked() []float64 {
	scores := make([]float64, len(t.entries))
	for i, e := range t.entries {
		scores[i] = e.OverallScore
	}
	return scores
}

// Trend assembles the full trend report over retained history. The percent
// change covers the two most recent entries; a zero-valued previous score
// returns ErrZeroPreviousScore.
func (t *Tracker) Trend() (models.TrendReport, error) {
	t.mu.Lock()
	scores := t.scoresLocked()
	t.mu.Unlock()
	n := len(scores)

	// Every figure below derives from the one snapshot, so a concurrent
	// Record cannot produce a direction that disagrees with the mean or
	// percent change.
	report := models.TrendReport{
		Direction:   directionOf(scores),
		Evaluations: n,
		MeanScore:   statistics.Mean(scores),
	}
	if n < 2 {
		return report, nil
	}

	previous := scores[n-2]
	if previous == 0 {
		return models.TrendReport{}, ErrZeroPreviousScore
	}
	report.PercentChange = (scores[n-1] - previous) / previous * 100

	ci := statistics.MeanInterval(scores, confidenceLevel)
	report.Confidence = &models.ScoreConfidence{
		Lower: ci.Lower,
		Upper: ci.Upper,
		Level: ci.Level,
	}
	return report, nil
}
