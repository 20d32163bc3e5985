// Package orchestration coordinates the full document pipeline: text
// normalization, cached analysis, quality judging, and history recording.
// Both wire surfaces (MCP and plain JSON-RPC) and the CLI call through the
// Service here, so every surface observes identical semantics.
package orchestration

import (
	"context"
	"log/slog"

	"github.com/vinothezhumalai/legalmcpserver/internal/analysis"
	"github.com/vinothezhumalai/legalmcpserver/internal/cache"
	"github.com/vinothezhumalai/legalmcpserver/internal/config"
	"github.com/vinothezhumalai/legalmcpserver/internal/document"
	"github.com/vinothezhumalai/legalmcpserver/internal/evaluation"
	"github.com/vinothezhumalai/legalmcpserver/internal/history"
	"github.com/vinothezhumalai/legalmcpserver/internal/models"
	"github.com/vinothezhumalai/legalmcpserver/internal/oracle"
	"github.com/vinothezhumalai/legalmcpserver/internal/tokens"
)

// Service is the single entry point for document operations.
type Service struct {
	analyzer  *analysis.Analyzer
	evaluator *evaluation.Evaluator
	tracker   *history.Tracker
	store     *cache.Cache
	model     string
	logger    *slog.Logger
}

// Options configures a Service.
type Options struct {
	// Model identifies the oracle model; it participates in cache keys.
	Model string
	// MaxTokens bounds each oracle response.
	MaxTokens int64
	// HistoryCapacity bounds the scoreboard history ring. Non-positive
	// selects the default.
	HistoryCapacity int
	// CacheDir is the analysis cache directory. Empty disables caching.
	CacheDir string
	Logger   *slog.Logger
}

// NewService wires the pipeline around the given completer.
func NewService(completer oracle.Completer, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		analyzer:  analysis.New(completer, opts.MaxTokens, logger),
		evaluator: evaluation.New(completer, opts.MaxTokens, logger),
		tracker:   history.NewTracker(opts.HistoryCapacity),
		store:     cache.New(opts.CacheDir),
		model:     opts.Model,
		logger:    logger,
	}
}

// EvaluationReport is a scoreboard plus its relation to the previous
// evaluation in this process's history.
type EvaluationReport struct {
	Scoreboard *models.Scoreboard `json:"scoreboard"`
	// PercentChangeFromPrevious is 0 for the first evaluation of the
	// process lifetime.
	PercentChangeFromPrevious float64 `json:"percent_change_from_previous"`
}

// Summarize produces a summary of the raw document.
func (s *Service) Summarize(ctx context.Context, rawDocument string) (models.SummaryResult, error) {
	return s.analyzer.Summarize(ctx, document.PlainText(rawDocument))
}

// Classify assigns the raw document a primary legal area.
func (s *Service) Classify(ctx context.Context, rawDocument, expectedArea string, includePrecedents bool) (models.ClassificationResult, error) {
	return s.analyzer.Classify(ctx, document.PlainText(rawDocument), expectedArea, includePrecedents)
}

// Evaluate runs the full pipeline: analyze (with cache), judge, aggregate,
// compare to the previous evaluation, and record. The percent change is taken
// against the last recorded scoreboard before the new one enters history.
func (s *Service) Evaluate(ctx context.Context, rawDocument, expectedArea string, opts config.EvaluationOptions) (*EvaluationReport, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	da, err := s.analyzeCached(ctx, rawDocument, expectedArea, opts)
	if err != nil {
		return nil, err
	}

	sb, err := s.evaluator.Evaluate(ctx, da, opts)
	if err != nil {
		return nil, err
	}

	change, err := s.tracker.PercentChange(sb.OverallScore)
	if err != nil {
		return nil, err
	}
	s.tracker.Record(sb)

	return &EvaluationReport{
		Scoreboard:                sb,
		PercentChangeFromPrevious: change,
	}, nil
}

// analyzeCached returns a cached analysis when one exists for this exact
// (document, model, area, precedents) tuple, otherwise runs the analysis and
// stores it. Cache write failures are logged, not fatal.
func (s *Service) analyzeCached(ctx context.Context, rawDocument, expectedArea string, opts config.EvaluationOptions) (*models.DocumentAnalysis, error) {
	docText := document.PlainText(rawDocument)
	if tokens.ExceedsBudget(docText) {
		s.logger.Warn("document likely exceeds the model context budget",
			"estimated_tokens", tokens.Estimate(docText), "budget", tokens.ContextBudget)
	}

	key, err := cache.Key(docText, s.model, expectedArea, opts.RequirePrecedentAnalysis)
	if err != nil {
		return nil, err
	}
	if da, ok := s.store.Get(key); ok {
		s.logger.Debug("analysis cache hit", "key", key)
		return da, nil
	}

	da, err := s.analyzer.Analyze(ctx, rawDocument, expectedArea, opts)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(key, da); err != nil {
		s.logger.Warn("analysis cache write failed", "error", err)
	}
	return da, nil
}

// Analyze runs summarization and classification together without judging,
// reusing any cached analysis for the document.
func (s *Service) Analyze(ctx context.Context, rawDocument, expectedArea string, includePrecedents bool) (*models.DocumentAnalysis, error) {
	opts := config.DefaultEvaluationOptions()
	opts.RequirePrecedentAnalysis = includePrecedents
	return s.analyzeCached(ctx, rawDocument, expectedArea, opts)
}

// Trend reports score movement across recorded evaluations.
func (s *Service) Trend() (models.TrendReport, error) {
	return s.tracker.Trend()
}

// Recent returns up to limit recorded scoreboards, oldest first. limit <= 0
// returns everything retained.
func (s *Service) Recent(limit int) []*models.Scoreboard {
	return s.tracker.Recent(limit)
}

// Scoreboard returns the recorded scoreboard for a document ID.
func (s *Service) Scoreboard(documentID string) (*models.Scoreboard, error) {
	return s.tracker.Get(documentID)
}
