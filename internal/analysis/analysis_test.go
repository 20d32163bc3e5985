package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinothezhumalai/legalmcpserver/internal/config"
	"github.com/vinothezhumalai/legalmcpserver/internal/oracle"
)

// fakeCompleter routes completion requests on prompt content and records
// what it was asked.
type fakeCompleter struct {
	mu       sync.Mutex
	requests []oracle.Request

	summaryJSON        string
	classificationJSON string
	err                error
}

func (f *fakeCompleter) Complete(_ context.Context, req oracle.Request) (json.RawMessage, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if strings.Contains(req.Prompt, "Summarize") {
		return json.RawMessage(f.summaryJSON), nil
	}
	return json.RawMessage(f.classificationJSON), nil
}

func newFake() *fakeCompleter {
	return &fakeCompleter{
		summaryJSON:        `{"summary": "A services agreement.", "key_points": ["24 month term"]}`,
		classificationJSON: `{"primary_area": "contract", "confidence": 0.9, "reasoning": "operative contract language"}`,
	}
}

func TestAnalyze_RunsBothPasses(t *testing.T) {
	fake := newFake()
	a := New(fake, 0, nil)

	got, err := a.Analyze(context.Background(), "# Agreement\n\nThe parties agree.", "contract", config.DefaultEvaluationOptions())
	require.NoError(t, err)

	assert.Equal(t, "A services agreement.", got.Summary.Summary)
	assert.Equal(t, "contract", got.Classification.PrimaryArea)
	assert.Equal(t, 0.9, got.Classification.Confidence)
	assert.Equal(t, "contract", got.ExpectedArea)
	// Markdown was normalized before prompting.
	assert.Equal(t, "Agreement\nThe parties agree.", got.Document)
	assert.Len(t, fake.requests, 2)
}

func TestAnalyze_OracleFailurePropagates(t *testing.T) {
	fake := newFake()
	fake.err = &oracle.CallError{Err: errors.New("rate limited")}
	a := New(fake, 0, nil)

	_, err := a.Analyze(context.Background(), "doc", "", config.DefaultEvaluationOptions())
	require.Error(t, err)

	var callErr *oracle.CallError
	assert.ErrorAs(t, err, &callErr)
}

func TestSummarize_DecodesShape(t *testing.T) {
	fake := newFake()
	a := New(fake, 512, nil)

	got, err := a.Summarize(context.Background(), "the document")
	require.NoError(t, err)
	assert.Equal(t, []string{"24 month term"}, got.KeyPoints)
	require.Len(t, fake.requests, 1)
	assert.Equal(t, int64(512), fake.requests[0].MaxTokens)
	assert.Contains(t, fake.requests[0].SchemaDescription, "key_points")
}

func TestSummarize_MissingKeyPointsDefaultsEmpty(t *testing.T) {
	fake := newFake()
	fake.summaryJSON = `{"summary": "short"}`
	a := New(fake, 0, nil)

	got, err := a.Summarize(context.Background(), "doc")
	require.NoError(t, err)
	assert.NotNil(t, got.KeyPoints)
	assert.Empty(t, got.KeyPoints)
}

func TestClassify_NormalizesConfidence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"percent scale", `{"primary_area": "tort", "confidence": 85}`, 0.85},
		{"negative clamps", `{"primary_area": "tort", "confidence": -0.2}`, 0.0},
		{"above hundred clamps", `{"primary_area": "tort", "confidence": 400}`, 1.0},
		{"in range untouched", `{"primary_area": "tort", "confidence": 0.42}`, 0.42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			fake.classificationJSON = tt.raw
			a := New(fake, 0, nil)

			got, err := a.Classify(context.Background(), "doc", "", false)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Confidence, 1e-9)
		})
	}
}

func TestClassify_PrecedentToggleReachesPrompt(t *testing.T) {
	fake := newFake()
	a := New(fake, 0, nil)

	_, err := a.Classify(context.Background(), "doc", "", false)
	require.NoError(t, err)
	assert.Contains(t, fake.requests[0].Prompt, "Leave the precedents list empty")

	_, err = a.Classify(context.Background(), "doc", "", true)
	require.NoError(t, err)
	assert.Contains(t, fake.requests[1].Prompt, "precedents relevant")
}

func TestClassify_MalformedResponse(t *testing.T) {
	fake := newFake()
	fake.classificationJSON = `[1, 2, 3]`
	a := New(fake, 0, nil)

	_, err := a.Classify(context.Background(), "doc", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding classification response")
}
