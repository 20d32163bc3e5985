// Package oracle wraps the hosted LLM completion endpoint behind a small
// text-in/JSON-out capability. Callers describe the JSON shape they expect;
// the oracle returns raw JSON or a distinguishable error. No retries happen
// here; a failed call fails the operation that issued it.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Request is a single completion call.
type Request struct {
	// System is the optional system instruction for the call.
	System string
	// Prompt is the user-facing prompt text.
	Prompt string
	// SchemaDescription tells the model what JSON shape to produce. It is
	// appended to the prompt verbatim.
	SchemaDescription string
	// MaxTokens bounds the response length.
	MaxTokens int64
}

// Completer is the completion capability the engine depends on. It is an
// injected interface so the aggregation math can be exercised with synthetic
// judgments, decoupled from any live model.
type Completer interface {
	Complete(ctx context.Context, req Request) (json.RawMessage, error)
}

// CallError reports a failed upstream call (network, auth, rate limit,
// model-side error). It is surfaced as-is; the engine never retries.
type CallError struct {
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("oracle call failed: %v", e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response that was not valid JSON even after repair.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("oracle returned invalid JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// buildPrompt joins the caller's prompt with the JSON shape contract.
func buildPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString(req.Prompt)
	if req.SchemaDescription != "" {
		sb.WriteString("\n\nRespond with a single JSON object and nothing else. The JSON must match this shape:\n")
		sb.WriteString(req.SchemaDescription)
	}
	return sb.String()
}

// stripMarkdownCodeFences removes a surrounding ```json ... ``` block if the
// model wrapped its response in one.
func stripMarkdownCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
