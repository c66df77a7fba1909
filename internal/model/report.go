package model

import "time"

// RiskBucket is an ordered severity label derived from a numeric risk score.
type RiskBucket string

const (
	RiskLow    RiskBucket = "Low"
	RiskMedium RiskBucket = "Medium"
	RiskHigh   RiskBucket = "High"
)

// Clause is a titled or untitled span of contract text subject to independent
// risk scoring.
type Clause struct {
	Title string `json:"title,omitempty"` // Optional clause heading
	Text  string `json:"text"`            // Clause body
}

// ClauseHighlight is a clause plus its risk score and bucket. The bucket is
// always derived from the score, never set independently.
type ClauseHighlight struct {
	Clause
	Score  int        `json:"score"`  // 0-100
	Bucket RiskBucket `json:"bucket"` // BucketFor(Score)
}

// Report is the complete analysis result for one contract.
type Report struct {
	Source     string    `json:"source,omitempty"` // Document path, if analyzed from a file
	AnalyzedAt time.Time `json:"analyzed_at"`
	Provider   string    `json:"provider,omitempty"` // LLM provider used for extraction
	Model      string    `json:"model,omitempty"`    // Model identifier passed to the provider

	RawModelText string `json:"raw_model_text"` // Verbatim assistant output
	Parsed       Record `json:"parsed"`         // Recovered structured record

	// ClauseHighlights is never empty: when no clauses could be identified a
	// single synthetic entry covers the whole document.
	ClauseHighlights []ClauseHighlight `json:"clause_highlights"`

	CompositeScore  int        `json:"composite_risk_score"`  // Floor of the mean clause score
	CompositeBucket RiskBucket `json:"composite_risk_bucket"` // BucketFor(CompositeScore)
}
