// Package evaluation turns an analyzed document into a scoreboard. It asks
// the oracle to judge the summarization and classification outputs criterion
// by criterion and aggregates the judgments deterministically. Recording the
// scoreboard into history is the caller's job.
package evaluation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vinothezhumalai/legalmcpserver/internal/benchmark"
	"github.com/vinothezhumalai/legalmcpserver/internal/config"
	"github.com/vinothezhumalai/legalmcpserver/internal/document"
	"github.com/vinothezhumalai/legalmcpserver/internal/models"
	"github.com/vinothezhumalai/legalmcpserver/internal/oracle"
	"github.com/vinothezhumalai/legalmcpserver/internal/prompts"
	"github.com/vinothezhumalai/legalmcpserver/internal/scoring"
)

// Evaluator grades analysis quality. The judging calls go through the
// injected Completer; everything after the judgments come back is
// deterministic math.
type Evaluator struct {
	completer oracle.Completer
	weights   scoring.WeightScheme
	maxTokens int64
	logger    *slog.Logger
	now       func() time.Time
}

// New builds an Evaluator using the default weight scheme.
func New(completer oracle.Completer, maxTokens int64, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		completer: completer,
		weights:   scoring.DefaultWeights(),
		maxTokens: maxTokens,
		logger:    logger,
		now:       time.Now,
	}
}

// Evaluate judges the given analysis and assembles the scoreboard. The two
// judgment calls are independent and run concurrently; either failure fails
// the evaluation. A malformed judgment for any criterion fails the whole
// evaluation rather than polluting the average with a default score.
func (e *Evaluator) Evaluate(ctx context.Context, da *models.DocumentAnalysis, opts config.EvaluationOptions) (*models.Scoreboard, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	summCriteria := e.weights.SummarizationCriteria()
	classCriteria := e.weights.ClassificationCriteria()

	var summRaw, classRaw json.RawMessage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summRaw, err = e.completer.Complete(gctx, oracle.Request{
			System:            prompts.JudgeSystem(),
			Prompt:            prompts.SummarizationJudgment(da.Document, da.Summary, summCriteria, opts.StrictAccuracyMode),
			SchemaDescription: prompts.JudgmentShape(summCriteria),
			MaxTokens:         e.maxTokens,
		})
		return err
	})
	g.Go(func() error {
		var err error
		classRaw, err = e.completer.Complete(gctx, oracle.Request{
			System:            prompts.JudgeSystem(),
			Prompt:            prompts.ClassificationJudgment(da.Document, da.Classification, classCriteria, opts.StrictAccuracyMode),
			SchemaDescription: prompts.JudgmentShape(classCriteria),
			MaxTokens:         e.maxTokens,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summScores, err := e.scoreGroup(summRaw, summCriteria, e.weights.Summarization)
	if err != nil {
		return nil, fmt.Errorf("summarization judgments: %w", err)
	}
	classScores, err := e.scoreGroup(classRaw, classCriteria, e.weights.Classification)
	if err != nil {
		return nil, fmt.Errorf("classification judgments: %w", err)
	}

	all := make([]models.MetricScore, 0, len(summScores)+len(classScores))
	for _, c := range summCriteria {
		all = append(all, summScores[c])
	}
	for _, c := range classCriteria {
		all = append(all, classScores[c])
	}

	overall, err := scoring.WeightedAverage(all)
	if err != nil {
		return nil, err
	}

	sb := &models.Scoreboard{
		DocumentID:           document.NewID(e.now()),
		Timestamp:            e.now(),
		OverallScore:         overall,
		OverallTier:          scoring.ClassifyTier(overall),
		SummarizationScores:  summScores,
		ClassificationScores: classScores,
		AggregateMetrics:     scoring.CountTiers(all),
		QualityFlags:         detectQualityFlags(da, opts),
	}
	sb.Strengths, sb.Weaknesses, sb.Recommendations = deriveInsights(all)

	if opts.IncludeComparativeBenchmarks {
		cmp := benchmark.Compare(overall)
		sb.Benchmark = &cmp
	}
	if !opts.EnableDetailedScoring {
		trimDetail(sb)
	}

	e.logger.Info("evaluation complete",
		"document_id", sb.DocumentID,
		"overall_score", sb.OverallScore,
		"overall_tier", sb.OverallTier)
	return sb, nil
}

// scoreGroup decodes one judgment response and builds the metric map for its
// criteria group. Scores are decoded with UseNumber so integer and fractional
// scores survive intact; a missing or non-numeric criterion fails the group.
func (e *Evaluator) scoreGroup(raw json.RawMessage, criteria []models.Criterion, weights map[models.Criterion]float64) (map[models.Criterion]models.MetricScore, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	judgments := make(map[models.Criterion]scoring.RawJudgment)
	if err := dec.Decode(&judgments); err != nil {
		return nil, fmt.Errorf("decoding judgment response: %w", err)
	}

	out := make(map[models.Criterion]models.MetricScore, len(criteria))
	for _, c := range criteria {
		metric, err := scoring.NewMetricScore(c, weights[c], judgments[c])
		if err != nil {
			return nil, err
		}
		out[c] = metric
	}
	return out, nil
}

// detectQualityFlags runs the advisory checks. Flags never change the score;
// they travel alongside it.
func detectQualityFlags(da *models.DocumentAnalysis, opts config.EvaluationOptions) models.QualityFlags {
	flags := models.QualityFlags{
		PotentialErrors:  []string{},
		Inconsistencies:  []string{},
		MissingElements:  []string{},
		ConfidenceIssues: []string{},
	}
	if da.Classification.Confidence < opts.MinimumConfidenceThreshold {
		flags.ConfidenceIssues = append(flags.ConfidenceIssues,
			fmt.Sprintf("classification confidence %.2f is below the %.2f threshold",
				da.Classification.Confidence, opts.MinimumConfidenceThreshold))
	}
	return flags
}

// deriveInsights extracts strengths, weaknesses, and recommendations from
// the graded metrics. Metrics arrive in a stable order, so the output is
// deterministic for a given set of judgments.
func deriveInsights(metrics []models.MetricScore) (strengths, weaknesses, recommendations []string) {
	strengths = []string{}
	weaknesses = []string{}
	recommendations = []string{}
	for _, m := range metrics {
		switch {
		case m.Tier == models.TierExcellent:
			strengths = append(strengths, insightLine(m))
		case !m.Tier.AtLeast(models.TierSatisfactory):
			weaknesses = append(weaknesses, insightLine(m))
			recommendations = append(recommendations,
				fmt.Sprintf("Improve %s: scored %.1f, target at least %.1f", m.Category, m.Score, 6.0))
		}
	}
	return strengths, weaknesses, recommendations
}

func insightLine(m models.MetricScore) string {
	if m.Feedback != "" {
		return fmt.Sprintf("%s: %s", m.Category, m.Feedback)
	}
	return fmt.Sprintf("%s scored %.1f", m.Category, m.Score)
}

// trimDetail strips per-metric evidence when detailed scoring is disabled.
// Scores, tiers, and feedback stay; only the quoted evidence is dropped.
func trimDetail(sb *models.Scoreboard) {
	for c, m := range sb.SummarizationScores {
		m.Evidence = []string{}
		sb.SummarizationScores[c] = m
	}
	for c, m := range sb.ClassificationScores {
		m.Evidence = []string{}
		sb.ClassificationScores[c] = m
	}
}
