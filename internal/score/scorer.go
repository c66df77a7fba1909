package score

import (
	"strings"

	"github.com/akostin/clauseguard/internal/model"
)

// Tier groups keyword substrings that carry the same risk weight.
type Tier struct {
	Name     string
	Weight   int
	Keywords []string // Lowercase substrings
}

// DefaultTable returns the standard risk keyword table.
func DefaultTable() []Tier {
	return []Tier{
		{
			Name:   "high",
			Weight: 30,
			Keywords: []string{
				"penalty", "indemnity", "unilateral", "terminate without", "liquidated damages",
			},
		},
		{
			Name:   "medium",
			Weight: 15,
			Keywords: []string{
				"auto-renew", "renewal", "notice period", "arbitration", "governing law",
			},
		},
		{
			Name:   "low",
			Weight: 5,
			Keywords: []string{
				"confidential", "nda", "non-disclosure",
			},
		},
	}
}

// Scorer computes deterministic keyword-based risk scores. The tier table is
// fixed at construction; tests can substitute alternate tables.
type Scorer struct {
	table []Tier
}

// NewScorer creates a scorer with the default table.
func NewScorer() *Scorer {
	return NewScorerWithTable(DefaultTable())
}

// NewScorerWithTable creates a scorer with a custom tier table.
func NewScorerWithTable(table []Tier) *Scorer {
	return &Scorer{table: table}
}

// Score returns a risk score in [0, 100] for the text. Scoring is
// presence-based: each keyword contributes its tier weight at most once, no
// matter how often it occurs.
func (s *Scorer) Score(text string) int {
	lower := strings.ToLower(text)

	total := 0
	for _, tier := range s.table {
		for _, kw := range tier.Keywords {
			if strings.Contains(lower, kw) {
				total += tier.Weight
			}
		}
	}

	if total > 100 {
		total = 100
	}
	return total
}

// BucketFor maps a score to its severity bucket using fixed thresholds.
func BucketFor(score int) model.RiskBucket {
	switch {
	case score >= 60:
		return model.RiskHigh
	case score >= 30:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// Aggregate returns the integer floor of the mean of scores and its bucket.
// Callers must pass at least one score; the pipeline's fallback-clause rule
// guarantees this, and an empty slice panics.
func Aggregate(scores []int) (int, model.RiskBucket) {
	sum := 0
	for _, sc := range scores {
		sum += sc
	}
	avg := sum / len(scores)
	return avg, BucketFor(avg)
}
