package models

// SummaryResult is the parsed output of a summarization call.
type SummaryResult struct {
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"key_points"`
	LegalTerms []string `json:"legal_terms,omitempty"`
	Citations  []string `json:"citations,omitempty"`
}

// Precedent is a case the classifier considered relevant.
type Precedent struct {
	Name      string `json:"name"`
	Citation  string `json:"citation,omitempty"`
	Relevance string `json:"relevance,omitempty"`
}

// ClassificationResult is the parsed output of a classification call.
// Confidence is the model's self-reported confidence in [0, 1].
type ClassificationResult struct {
	PrimaryArea  string      `json:"primary_area"`
	SubAreas     []string    `json:"sub_areas,omitempty"`
	Jurisdiction string      `json:"jurisdiction,omitempty"`
	Confidence   float64     `json:"confidence"`
	Precedents   []Precedent `json:"precedents,omitempty"`
	Reasoning    string      `json:"reasoning,omitempty"`
}

// DocumentAnalysis bundles both analysis passes over one document.
// Document holds the normalized plain text that was analyzed; it is not
// serialized with results.
type DocumentAnalysis struct {
	Document       string               `json:"-"`
	ExpectedArea   string               `json:"expected_area,omitempty"`
	Summary        SummaryResult        `json:"summary"`
	Classification ClassificationResult `json:"classification"`
}
