// Package prompts holds the fixed prompt templates and JSON shape
// descriptions sent to the completion oracle. The text here is domain
// content; the engineering contract is only that responses match the
// described shapes.
package prompts

import (
	"fmt"
	"strings"

	"github.com/vinothezhumalai/legalmcpserver/internal/models"
)

const analystSystem = `You are a senior legal analyst. You read legal documents carefully, reason about their contents, and always respond with a single JSON object matching the requested shape. You never add commentary outside the JSON.`

const judgeSystem = `You are a meticulous legal-quality reviewer. You grade analysis outputs criterion by criterion on a 0-10 scale, citing concrete evidence from the material under review. You always respond with a single JSON object matching the requested shape.`

// AnalystSystem returns the system instruction for analysis calls.
func AnalystSystem() string {
	return analystSystem
}

// JudgeSystem returns the system instruction for evaluation calls.
func JudgeSystem() string {
	return judgeSystem
}

// SummarizationShape describes the JSON expected from a summarization call.
const SummarizationShape = `{
  "summary": "string: the document summary",
  "key_points": ["string: most important points, ordered by significance"],
  "legal_terms": ["string: notable terms of art used in the document"],
  "citations": ["string: statutes, regulations, or cases cited"]
}`

// ClassificationShape describes the JSON expected from a classification call.
const ClassificationShape = `{
  "primary_area": "string: the primary legal area (e.g. contract, tort, criminal, ip, employment)",
  "sub_areas": ["string: narrower sub-areas, if any"],
  "jurisdiction": "string: governing jurisdiction if determinable, else empty",
  "confidence": "number in [0,1]: your confidence in the primary area",
  "precedents": [{"name": "string", "citation": "string", "relevance": "string"}],
  "reasoning": "string: brief explanation of the classification"
}`

// Summarization builds the prompt for summarizing a legal document.
func Summarization(document string) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following legal document. Preserve operative language, obligations, deadlines, and defined terms. Do not speculate beyond the text.\n\n")
	sb.WriteString("## Document\n\n")
	sb.WriteString(document)
	return sb.String()
}

// Classification builds the prompt for classifying a legal document.
// expectedArea, when non-empty, is the caller's stated legal area and is
// offered to the model as a hypothesis to confirm or reject, not a label to
// parrot. includePrecedents controls whether precedent analysis is requested.
func Classification(document, expectedArea string, includePrecedents bool) string {
	var sb strings.Builder
	sb.WriteString("Classify the following legal document by its primary legal area.\n")
	if expectedArea != "" {
		fmt.Fprintf(&sb, "The submitter believes this is a %s document; confirm or correct that assessment based on the text alone.\n", expectedArea)
	}
	if includePrecedents {
		sb.WriteString("Identify any controlling or persuasive precedents relevant to the document's subject matter.\n")
	} else {
		sb.WriteString("Leave the precedents list empty.\n")
	}
	sb.WriteString("\n## Document\n\n")
	sb.WriteString(document)
	return sb.String()
}

// JudgmentShape describes the per-criterion judgment object expected from
// evaluation calls, keyed by the given criteria.
func JudgmentShape(criteria []models.Criterion) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, c := range criteria {
		fmt.Fprintf(&sb, "  %q: {\"score\": \"number in [0,10]\", \"feedback\": \"string\", \"evidence\": [\"string\"]}", string(c))
		if i < len(criteria)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// SummarizationJudgment builds the prompt asking the oracle to grade a
// produced summary against its source document, one score per criterion.
// strict tightens the grading guidance for accuracy-sensitive callers.
func SummarizationJudgment(document string, summary models.SummaryResult, criteria []models.Criterion, strict bool) string {
	var sb strings.Builder
	sb.WriteString("Grade the quality of the summary below against its source document. Score every criterion independently on a 0-10 scale with specific feedback and supporting evidence quoted from the material.\n")
	if strict {
		sb.WriteString("Apply strict accuracy standards: any unsupported claim in the summary caps factual criteria at 4.\n")
	}
	sb.WriteString("\n## Criteria\n")
	for _, c := range criteria {
		fmt.Fprintf(&sb, "- %s\n", string(c))
	}
	sb.WriteString("\n## Source document\n\n")
	sb.WriteString(document)
	sb.WriteString("\n\n## Summary under review\n\n")
	sb.WriteString(summary.Summary)
	if len(summary.KeyPoints) > 0 {
		sb.WriteString("\n\nKey points:\n")
		for _, kp := range summary.KeyPoints {
			fmt.Fprintf(&sb, "- %s\n", kp)
		}
	}
	return sb.String()
}

// ClassificationJudgment builds the prompt asking the oracle to grade a
// produced classification against its source document.
func ClassificationJudgment(document string, classification models.ClassificationResult, criteria []models.Criterion, strict bool) string {
	var sb strings.Builder
	sb.WriteString("Grade the quality of the classification below against its source document. Score every criterion independently on a 0-10 scale with specific feedback and supporting evidence.\n")
	if strict {
		sb.WriteString("Apply strict accuracy standards: a wrong primary area caps area criteria at 3.\n")
	}
	sb.WriteString("\n## Criteria\n")
	for _, c := range criteria {
		fmt.Fprintf(&sb, "- %s\n", string(c))
	}
	sb.WriteString("\n## Source document\n\n")
	sb.WriteString(document)
	sb.WriteString("\n\n## Classification under review\n\n")
	fmt.Fprintf(&sb, "Primary area: %s\n", classification.PrimaryArea)
	if len(classification.SubAreas) > 0 {
		fmt.Fprintf(&sb, "Sub-areas: %s\n", strings.Join(classification.SubAreas, ", "))
	}
	if classification.Jurisdiction != "" {
		fmt.Fprintf(&sb, "Jurisdiction: %s\n", classification.Jurisdiction)
	}
	fmt.Fprintf(&sb, "Stated confidence: %.2f\n", classification.Confidence)
	for _, p := range classification.Precedents {
		fmt.Fprintf(&sb, "Precedent: %s (%s): %s\n", p.Name, p.Citation, p.Relevance)
	}
	if classification.Reasoning != "" {
		fmt.Fprintf(&sb, "Reasoning: %s\n", classification.Reasoning)
	}
	return sb.String()
}
