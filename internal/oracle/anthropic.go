package oracle

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/kaptinlin/jsonrepair"
)

// Defaults for the Anthropic-backed completer.
const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = int64(4096)

	// defaultTemperature is low for judgment consistency across calls.
	defaultTemperature = 0.1
)

// AnthropicCompleter implements Completer against the Anthropic Messages API.
type AnthropicCompleter struct {
	client anthropic.Client
	model  string
	logger *slog.Logger
}

// NewAnthropicCompleter builds a completer for the given API key and model.
// An empty model selects DefaultModel.
func NewAnthropicCompleter(apiKey, model string, logger *slog.Logger) *AnthropicCompleter {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnthropicCompleter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		logger: logger,
	}
}

// Complete implements [Completer]. The response text is stripped of markdown
// fences and, when it fails to parse, run through JSON repair once before the
// call is failed with a DecodeError.
func (c *AnthropicCompleter) Complete(ctx context.Context, req Request) (json.RawMessage, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(buildPrompt(req)),
			},
		}},
	}
	params.Temperature = anthropic.Float(defaultTemperature)
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	c.logger.Debug("issuing completion", "model", c.model, "prompt_length", len(req.Prompt))

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &CallError{Err: err}
	}

	var text strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			text.WriteString(content.Text)
		}
	}

	return DecodeJSON(text.String())
}

// DecodeJSON validates the model's response text as JSON, repairing common
// LLM output defects (trailing commas, unquoted keys, fence wrappers) before
// giving up with a DecodeError.
func DecodeJSON(responseText string) (json.RawMessage, error) {
	cleaned := stripMarkdownCodeFences(responseText)

	var probe any
	if err := json.Unmarshal([]byte(cleaned), &probe); err == nil {
		return json.RawMessage(cleaned), nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(cleaned)
	if repairErr != nil {
		return nil, &DecodeError{Raw: responseText, Err: repairErr}
	}
	if err := json.Unmarshal([]byte(repaired), &probe); err != nil {
		return nil, &DecodeError{Raw: responseText, Err: err}
	}
	return json.RawMessage(repaired), nil
}
