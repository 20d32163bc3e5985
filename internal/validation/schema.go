// Package validation checks incoming request payloads against embedded JSON
// Schemas before any oracle call is made. The schema documents double as the
// published inputSchema of the MCP tools, so callers see exactly the contract
// that is enforced.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// SummarizeSchemaJSON is the input contract for summarization requests.
const SummarizeSchemaJSON = `{
  "type": "object",
  "properties": {
    "document": {
      "type": "string",
      "minLength": 1,
      "description": "Full text of the legal document, plain text or markdown"
    }
  },
  "required": ["document"],
  "additionalProperties": false
}`

// ClassifySchemaJSON is the input contract for classification requests.
const ClassifySchemaJSON = `{
  "type": "object",
  "properties": {
    "document": {
      "type": "string",
      "minLength": 1,
      "description": "Full text of the legal document, plain text or markdown"
    },
    "expectedArea": {
      "type": "string",
      "description": "Optional hypothesis for the primary legal area"
    },
    "includePrecedents": {
      "type": "boolean",
      "description": "Request precedent analysis alongside the classification"
    }
  },
  "required": ["document"],
  "additionalProperties": false
}`

// EvaluateSchemaJSON is the input contract for quality evaluation requests.
const EvaluateSchemaJSON = `{
  "type": "object",
  "properties": {
    "document": {
      "type": "string",
      "minLength": 1,
      "description": "Full text of the legal document, plain text or markdown"
    },
    "expectedArea": {
      "type": "string",
      "description": "Optional hypothesis for the primary legal area"
    },
    "options": {
      "type": "object",
      "properties": {
        "enableDetailedScoring": {"type": "boolean"},
        "includeComparativeBenchmarks": {"type": "boolean"},
        "strictAccuracyMode": {"type": "boolean"},
        "minimumConfidenceThreshold": {"type": "number", "minimum": 0, "maximum": 1},
        "requirePrecedentAnalysis": {"type": "boolean"}
      },
      "additionalProperties": false
    }
  },
  "required": ["document"],
  "additionalProperties": false
}`

// ListSchemaJSON is the input contract for history listing requests.
const ListSchemaJSON = `{
  "type": "object",
  "properties": {
    "limit": {
      "type": "integer",
      "minimum": 1,
      "description": "Maximum number of recent evaluations to return"
    }
  },
  "additionalProperties": false
}`

// TrendSchemaJSON is the input contract for trend requests, which take no
// arguments.
const TrendSchemaJSON = `{
  "type": "object",
  "properties": {},
  "additionalProperties": false
}`

var (
	summarizeSchema *jsonschema.Schema
	classifySchema  *jsonschema.Schema
	evaluateSchema  *jsonschema.Schema
	listSchema      *jsonschema.Schema
	trendSchema     *jsonschema.Schema
)

func init() {
	summarizeSchema = mustCompileSchema(SummarizeSchemaJSON, "summarize.schema.json")
	classifySchema = mustCompileSchema(ClassifySchemaJSON, "classify.schema.json")
	evaluateSchema = mustCompileSchema(EvaluateSchemaJSON, "evaluate.schema.json")
	listSchema = mustCompileSchema(ListSchemaJSON, "list.schema.json")
	trendSchema = mustCompileSchema(TrendSchemaJSON, "trend.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateSummarizeRequest checks a summarization payload. A nil return means
// the payload is valid.
func ValidateSummarizeRequest(raw json.RawMessage) []string {
	return validateJSONBytes(summarizeSchema, raw)
}

// ValidateClassifyRequest checks a classification payload.
func ValidateClassifyRequest(raw json.RawMessage) []string {
	return validateJSONBytes(classifySchema, raw)
}

// ValidateEvaluateRequest checks a quality evaluation payload.
func ValidateEvaluateRequest(raw json.RawMessage) []string {
	return validateJSONBytes(evaluateSchema, raw)
}

// ValidateListRequest checks a history listing payload.
func ValidateListRequest(raw json.RawMessage) []string {
	return validateJSONBytes(listSchema, raw)
}

// ValidateTrendRequest checks a trend payload.
func ValidateTrendRequest(raw json.RawMessage) []string {
	return validateJSONBytes(trendSchema, raw)
}

func validateJSONBytes(schema *jsonschema.Schema, raw json.RawMessage) []string {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	instance, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return []string{fmt.Sprintf("JSON parse error: %v", err)}
	}
	return validateAgainstSchema(schema, instance)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
