package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinothezhumalai/legalmcpserver/internal/models"
	"github.com/vinothezhumalai/legalmcpserver/internal/oracle"
	"github.com/vinothezhumalai/legalmcpserver/internal/orchestration"
	"github.com/vinothezhumalai/legalmcpserver/internal/scoring"
)

// pipelineFake answers analysis and judgment prompts with canned JSON.
type pipelineFake struct {
	judgeScore float64
	badScore   bool
	err        error
}

func (f *pipelineFake) Complete(_ context.Context, req oracle.Request) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	switch {
	case strings.Contains(req.Prompt, "Summarize the following"):
		return json.RawMessage(`{"summary": "An agreement.", "key_points": ["term"]}`), nil
	case strings.Contains(req.Prompt, "Classify the following"):
		return json.RawMessage(`{"primary_area": "contract", "confidence": 0.9}`), nil
	default:
		w := scoring.DefaultWeights()
		criteria := w.SummarizationCriteria()
		if strings.Contains(req.Prompt, "Classification under review") {
			criteria = w.ClassificationCriteria()
		}
		parts := make([]string, 0, len(criteria))
		for i, c := range criteria {
			score := fmt.Sprintf("%.1f", f.judgeScore)
			if f.badScore && i == 0 {
				score = `"high"`
			}
			parts = append(parts, fmt.Sprintf(`%q: {"score": %s}`, string(c), score))
		}
		return json.RawMessage("{" + strings.Join(parts, ",") + "}"), nil
	}
}

func newHandlerContext(t *testing.T, f *pipelineFake) *HandlerContext {
	t.Helper()
	svc := orchestration.NewService(f, orchestration.Options{Model: "test-model"})
	return NewHandlerContext(svc)
}

func TestHandleSummarize(t *testing.T) {
	hctx := newHandlerContext(t, &pipelineFake{})

	result, rpcErr := hctx.handleSummarize(context.Background(),
		json.RawMessage(`{"document": "The parties agree."}`))
	require.Nil(t, rpcErr)

	summary, ok := result.(models.SummaryResult)
	require.True(t, ok)
	assert.Equal(t, "An agreement.", summary.Summary)
}

func TestHandleSummarize_MissingDocument(t *testing.T) {
	hctx := newHandlerContext(t, &pipelineFake{})

	_, rpcErr := hctx.handleSummarize(context.Background(), json.RawMessage(`{}`))
	require.NotNil(t, rpcErr)
	assert.Equal(t, CodeInvalidParams, rpcErr.Code)
}

func TestHandleClassify(t *testing.T) {
	hctx := newHandlerContext(t, &pipelineFake{})

	result, rpcErr := hctx.handleClassify(context.Background(),
		json.RawMessage(`{"document": "text", "expectedArea": "contract"}`))
	require.Nil(t, rpcErr)

	cls, ok := result.(models.ClassificationResult)
	require.True(t, ok)
	assert.Equal(t, "contract", cls.PrimaryArea)
}

func TestHandleEvaluate(t *testing.T) {
	hctx := newHandlerContext(t, &pipelineFake{judgeScore: 9.0})

	result, rpcErr := hctx.handleEvaluate(context.Background(),
		json.RawMessage(`{"document": "The parties agree."}`))
	require.Nil(t, rpcErr)

	report, ok := result.(*orchestration.EvaluationReport)
	require.True(t, ok)
	assert.InDelta(t, 9.0, report.Scoreboard.OverallScore, 1e-9)
	assert.Equal(t, models.TierExcellent, report.Scoreboard.OverallTier)
}

func TestHandleEvaluate_BadOptions(t *testing.T) {
	hctx := newHandlerContext(t, &pipelineFake{judgeScore: 9.0})

	_, rpcErr := hctx.handleEvaluate(context.Background(),
		json.RawMessage(`{"document": "text", "options": {"verbosity": "high"}}`))
	require.NotNil(t, rpcErr)
	assert.Equal(t, CodeInvalidParams, rpcErr.Code, "schema validation rejects unknown options first")
}

func TestHandleEvaluate_MalformedJudgment(t *testing.T) {
	hctx := newHandlerContext(t, &pipelineFake{judgeScore: 8.0, badScore: true})

	_, rpcErr := hctx.handleEvaluate(context.Background(),
		json.RawMessage(`{"document": "text"}`))
	require.NotNil(t, rpcErr)
	assert.Equal(t, CodeMalformedJudgment, rpcErr.Code)
}

func TestHandleEvaluate_OracleFailure(t *testing.T) {
	hctx := newHandlerContext(t, &pipelineFake{
		err: &oracle.CallError{Err: errors.New("rate limited")},
	})

	_, rpcErr := hctx.handleEvaluate(context.Background(),
		json.RawMessage(`{"document": "text"}`))
	require.NotNil(t, rpcErr)
	assert.Equal(t, CodeOracleFailure, rpcErr.Code)
}

func TestHandleTrendAndList(t *testing.T) {
	hctx := newHandlerContext(t, &pipelineFake{judgeScore: 8.0})

	for i := 0; i < 2; i++ {
		_, rpcErr := hctx.handleEvaluate(context.Background(),
			json.RawMessage(fmt.Sprintf(`{"document": "doc %d"}`, i)))
		require.Nil(t, rpcErr)
	}

	result, rpcErr := hctx.handleTrend(context.Background(), nil)
	require.Nil(t, rpcErr)
	report, ok := result.(models.TrendReport)
	require.True(t, ok)
	assert.Equal(t, models.TrendStable, report.Direction)
	assert.Equal(t, 2, report.Evaluations)

	result, rpcErr = hctx.handleList(context.Background(), json.RawMessage(`{"limit": 1}`))
	require.Nil(t, rpcErr)
	list, ok := result.(*ListResult)
	require.True(t, ok)
	require.Len(t, list.Evaluations, 1)
	assert.Equal(t, models.TierGood, list.Evaluations[0].OverallTier)
}

func TestMapError_Unclassified(t *testing.T) {
	rpcErr := mapError(errors.New("something odd"))
	assert.Equal(t, CodeInternalError, rpcErr.Code)
}

func TestMapError_ZeroWeightIsConfiguration(t *testing.T) {
	rpcErr := mapError(fmt.Errorf("aggregating metrics: %w", scoring.ErrZeroWeight))
	assert.Equal(t, CodeConfiguration, rpcErr.Code)
}
