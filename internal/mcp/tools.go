package mcp

import (
	"encoding/json"

	"github.com/vinothezhumalai/legalmcpserver/internal/validation"
)

// Tool describes an MCP tool with its input schema.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ToolsDef returns the list of MCP tools exposed by the server. The input
// schemas are the same documents the validation layer enforces.
func ToolsDef() []Tool {
	return []Tool{
		{
			Name:        "legal_summarize_document",
			Description: "Summarize a legal document, preserving operative language, key points, terms of art, and citations",
			InputSchema: json.RawMessage(validation.SummarizeSchemaJSON),
		},
		{
			Name:        "legal_classify_document",
			Description: "Classify a legal document by primary legal area, with confidence, sub-areas, jurisdiction, and optional precedent analysis",
			InputSchema: json.RawMessage(validation.ClassifySchemaJSON),
		},
		{
			Name:        "legal_evaluate_quality",
			Description: "Run a full quality evaluation: summarize, classify, judge both outputs across 14 weighted criteria, and return a scoreboard with tier counts and benchmark comparison",
			InputSchema: json.RawMessage(validation.EvaluateSchemaJSON),
		},
		{
			Name:        "legal_quality_trend",
			Description: "Report how overall evaluation scores have moved across recent evaluations in this session",
			InputSchema: json.RawMessage(validation.TrendSchemaJSON),
		},
		{
			Name:        "legal_list_evaluations",
			Description: "List recent evaluations with document IDs, scores, and tiers",
			InputSchema: json.RawMessage(validation.ListSchemaJSON),
		},
	}
}
