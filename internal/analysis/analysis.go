// Package analysis produces the two LLM-backed analysis passes over a legal
// document: a summary and a classification. Both are opaque judgments; the
// package's only contract is JSON shape and range normalization.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vinothezhumalai/legalmcpserver/internal/config"
	"github.com/vinothezhumalai/legalmcpserver/internal/document"
	"github.com/vinothezhumalai/legalmcpserver/internal/models"
	"github.com/vinothezhumalai/legalmcpserver/internal/oracle"
	"github.com/vinothezhumalai/legalmcpserver/internal/prompts"
)

// Analyzer runs analysis prompts through the completion oracle.
type Analyzer struct {
	completer oracle.Completer
	maxTokens int64
	logger    *slog.Logger
}

// New creates an Analyzer. maxTokens <= 0 lets the completer pick its
// default.
func New(completer oracle.Completer, maxTokens int64, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		completer: completer,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Summarize produces a structured summary of the document text.
func (a *Analyzer) Summarize(ctx context.Context, docText string) (models.SummaryResult, error) {
	var result models.SummaryResult

	raw, err := a.completer.Complete(ctx, oracle.Request{
		System:            prompts.AnalystSystem(),
		Prompt:            prompts.Summarization(docText),
		SchemaDescription: prompts.SummarizationShape,
		MaxTokens:         a.maxTokens,
	})
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("decoding summarization response: %w", err)
	}
	if result.KeyPoints == nil {
		result.KeyPoints = []string{}
	}
	return result, nil
}

// Classify determines the document's primary legal area. expectedArea, when
// non-empty, is passed to the model as a hypothesis. includePrecedents
// requests precedent analysis.
func (a *Analyzer) Classify(ctx context.Context, docText, expectedArea string, includePrecedents bool) (models.ClassificationResult, error) {
	var result models.ClassificationResult

	raw, err := a.completer.Complete(ctx, oracle.Request{
		System:            prompts.AnalystSystem(),
		Prompt:            prompts.Classification(docText, expectedArea, includePrecedents),
		SchemaDescription: prompts.ClassificationShape,
		MaxTokens:         a.maxTokens,
	})
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("decoding classification response: %w", err)
	}

	// Models occasionally report confidence on a 0-100 or out-of-range
	// scale; normalize into [0, 1].
	if result.Confidence > 1 && result.Confidence <= 100 {
		result.Confidence /= 100
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	return result, nil
}

// Analyze normalizes the document and runs both passes. The two calls are
// independent, so they are issued concurrently; either failure fails the
// analysis.
func (a *Analyzer) Analyze(ctx context.Context, rawDocument, expectedArea string, opts config.EvaluationOptions) (*models.DocumentAnalysis, error) {
	docText := document.PlainText(rawDocument)

	result := &models.DocumentAnalysis{
		Document:     docText,
		ExpectedArea: expectedArea,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := a.Summarize(gctx, docText)
		if err != nil {
			return fmt.Errorf("summarization: %w", err)
		}
		result.Summary = summary
		return nil
	})
	g.Go(func() error {
		classification, err := a.Classify(gctx, docText, expectedArea, opts.RequirePrecedentAnalysis)
		if err != nil {
			return fmt.Errorf("classification: %w", err)
		}
		result.Classification = classification
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Debug("analysis complete",
		"primary_area", result.Classification.PrimaryArea,
		"confidence", result.Classification.Confidence,
		"key_points", len(result.Summary.KeyPoints))

	return result, nil
}
