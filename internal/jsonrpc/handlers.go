package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/vinothezhumalai/legalmcpserver/internal/config"
	"github.com/vinothezhumalai/legalmcpserver/internal/history"
	"github.com/vinothezhumalai/legalmcpserver/internal/models"
	"github.com/vinothezhumalai/legalmcpserver/internal/oracle"
	"github.com/vinothezhumalai/legalmcpserver/internal/orchestration"
	"github.com/vinothezhumalai/legalmcpserver/internal/scoring"
	"github.com/vinothezhumalai/legalmcpserver/internal/validation"
)

// HandlerContext binds the document pipeline to the RPC method set.
type HandlerContext struct {
	service *orchestration.Service
}

// NewHandlerContext creates the handler context over a wired service.
func NewHandlerContext(service *orchestration.Service) *HandlerContext {
	return &HandlerContext{service: service}
}

// RegisterHandlers registers all document and history method handlers.
func RegisterHandlers(registry *MethodRegistry, hctx *HandlerContext) {
	registry.Register("document.summarize", hctx.handleSummarize)
	registry.Register("document.classify", hctx.handleClassify)
	registry.Register("document.evaluate", hctx.handleEvaluate)
	registry.Register("history.trend", hctx.handleTrend)
	registry.Register("history.list", hctx.handleList)
}

// mapError converts pipeline errors to their wire codes. Anything
// unclassified is an internal error.
func mapError(err error) *Error {
	var callErr *oracle.CallError
	if errors.As(err, &callErr) {
		return ErrOracleFailure(err.Error())
	}
	var decodeErr *oracle.DecodeError
	if errors.As(err, &decodeErr) {
		return ErrMalformedJudgment(err.Error())
	}
	if errors.Is(err, scoring.ErrMalformedJudgment) {
		return ErrMalformedJudgment(err.Error())
	}
	if errors.Is(err, scoring.ErrZeroWeight) {
		return ErrConfiguration(err.Error())
	}
	if errors.Is(err, history.ErrZeroPreviousScore) {
		return ErrDegenerateHistory(err.Error())
	}
	return ErrInternalError(err.Error())
}

// --- document.summarize ---

type SummarizeParams struct {
	Document string `json:"document"`
}

func (h *HandlerContext) handleSummarize(ctx context.Context, params json.RawMessage) (any, *Error) {
	if errs := validation.ValidateSummarizeRequest(params); len(errs) > 0 {
		return nil, ErrInvalidParams(errs)
	}
	var p SummarizeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, ErrInvalidParams(err.Error())
	}

	result, err := h.service.Summarize(ctx, p.Document)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// --- document.classify ---

type ClassifyParams struct {
	Document          string `json:"document"`
	ExpectedArea      string `json:"expectedArea,omitempty"`
	IncludePrecedents *bool  `json:"includePrecedents,omitempty"`
}

func (h *HandlerContext) handleClassify(ctx context.Context, params json.RawMessage) (any, *Error) {
	if errs := validation.ValidateClassifyRequest(params); len(errs) > 0 {
		return nil, ErrInvalidParams(errs)
	}
	var p ClassifyParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, ErrInvalidParams(err.Error())
	}

	// Precedent analysis is on unless explicitly disabled.
	includePrecedents := p.IncludePrecedents == nil || *p.IncludePrecedents

	result, err := h.service.Classify(ctx, p.Document, p.ExpectedArea, includePrecedents)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// --- document.evaluate ---

type EvaluateParams struct {
	Document     string         `json:"document"`
	ExpectedArea string         `json:"expectedArea,omitempty"`
	Options      map[string]any `json:"options,omitempty"`
}

func (h *HandlerContext) handleEvaluate(ctx context.Context, params json.RawMessage) (any, *Error) {
	if errs := validation.ValidateEvaluateRequest(params); len(errs) > 0 {
		return nil, ErrInvalidParams(errs)
	}
	var p EvaluateParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, ErrInvalidParams(err.Error())
	}

	opts, err := config.DecodeEvaluationOptions(p.Options)
	if err != nil {
		return nil, ErrConfiguration(err.Error())
	}

	report, err := h.service.Evaluate(ctx, p.Document, p.ExpectedArea, opts)
	if err != nil {
		return nil, mapError(err)
	}
	return report, nil
}

// --- history.trend ---

func (h *HandlerContext) handleTrend(_ context.Context, params json.RawMessage) (any, *Error) {
	if errs := validation.ValidateTrendRequest(params); len(errs) > 0 {
		return nil, ErrInvalidParams(errs)
	}

	report, err := h.service.Trend()
	if err != nil {
		return nil, mapError(err)
	}
	return report, nil
}

// --- history.list ---

type ListParams struct {
	Limit int `json:"limit,omitempty"`
}

type ListResult struct {
	Evaluations []EvaluationSummary `json:"evaluations"`
}

// EvaluationSummary is the abbreviated history view: enough to pick out a
// document ID for a follow-up lookup.
type EvaluationSummary struct {
	DocumentID   string      `json:"document_id"`
	Timestamp    string      `json:"timestamp"`
	OverallScore float64     `json:"overall_score"`
	OverallTier  models.Tier `json:"overall_tier"`
}

func (h *HandlerContext) handleList(_ context.Context, params json.RawMessage) (any, *Error) {
	if errs := validation.ValidateListRequest(params); len(errs) > 0 {
		return nil, ErrInvalidParams(errs)
	}
	var p ListParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, ErrInvalidParams(err.Error())
		}
	}

	boards := h.service.Recent(p.Limit)
	result := &ListResult{Evaluations: make([]EvaluationSummary, 0, len(boards))}
	for _, sb := range boards {
		result.Evaluations = append(result.Evaluations, EvaluationSummary{
			DocumentID:   sb.DocumentID,
			Timestamp:    sb.Timestamp.UTC().Format(time.RFC3339),
			OverallScore: sb.OverallScore,
			OverallTier:  sb.OverallTier,
		})
	}
	return result, nil
}
