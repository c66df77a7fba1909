package score

import (
	"strings"
	"testing"

	"github.com/akostin/clauseguard/internal/model"
)

func TestScorer_SingleKeywords(t *testing.T) {
	s := NewScorer()

	cases := []struct {
		text string
		want int
	}{
		{"A penalty of $500 applies per incident.", 30},
		{"Indemnity obligations survive termination.", 30},
		{"Supplier may exercise unilateral price changes.", 30},
		{"Client may terminate without cause at any time.", 30},
		{"A notice period of 60 days applies.", 15},
		{"Liquidated damages are capped at fees paid.", 30},
		{"This agreement shall auto-renew annually.", 15},
		{"The renewal term is twelve months.", 15},
		{"Disputes go to binding arbitration.", 15},
		{"Governing law: State of Delaware.", 15},
		{"All confidential information must be protected.", 5},
		{"The parties executed an NDA beforehand.", 5},
		{"Routine non-disclosure obligations apply.", 5},
		{"The contractor shall deliver the work on time.", 0},
		{"", 0},
	}

	for _, tc := range cases {
		if got := s.Score(tc.text); got != tc.want {
			t.Errorf("Score(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestScorer_CaseInsensitive(t *testing.T) {
	s := NewScorer()

	if got := s.Score("PENALTY CLAUSE: INDEMNITY REQUIRED"); got != 60 {
		t.Errorf("Expected 60 for uppercase keywords, got %d", got)
	}
	if got := s.Score("Auto-Renew and Governing Law"); got != 30 {
		t.Errorf("Expected 30 for mixed-case keywords, got %d", got)
	}
}

func TestScorer_RepetitionInvariance(t *testing.T) {
	s := NewScorer()

	once := s.Score("penalty")
	many := s.Score(strings.Repeat("penalty penalty penalty ", 20))

	if once != many {
		t.Errorf("Repetition changed the score: once=%d many=%d", once, many)
	}
	if once != 30 {
		t.Errorf("Expected 30, got %d", once)
	}
}

func TestScorer_Clamp(t *testing.T) {
	s := NewScorer()

	// All five high keywords alone would sum to 150.
	text := "penalty indemnity unilateral terminate without liquidated damages " +
		"auto-renew renewal notice period arbitration governing law " +
		"confidential nda non-disclosure"

	if got := s.Score(text); got != 100 {
		t.Errorf("Expected clamp at 100, got %d", got)
	}
}

func TestScorer_AppendingKeywordNeverLowersScore(t *testing.T) {
	s := NewScorer()
	base := "The renewal term is one year."
	baseScore := s.Score(base)

	for _, kw := range []string{"penalty", "arbitration", "nda", "renewal"} {
		got := s.Score(base + " " + kw)
		if got < baseScore {
			t.Errorf("Appending %q lowered the score: %d -> %d", kw, baseScore, got)
		}
	}
}

func TestScorer_CustomTable(t *testing.T) {
	s := NewScorerWithTable([]Tier{
		{Name: "custom", Weight: 50, Keywords: []string{"widget"}},
	})

	if got := s.Score("a widget clause"); got != 50 {
		t.Errorf("Expected custom table weight 50, got %d", got)
	}
	if got := s.Score("a penalty clause"); got != 0 {
		t.Errorf("Expected default keywords to be inert under a custom table, got %d", got)
	}
}

func TestBucketFor(t *testing.T) {
	cases := []struct {
		score int
		want  model.RiskBucket
	}{
		{0, model.RiskLow},
		{29, model.RiskLow},
		{30, model.RiskMedium},
		{59, model.RiskMedium},
		{60, model.RiskHigh},
		{100, model.RiskHigh},
	}

	for _, tc := range cases {
		if got := BucketFor(tc.score); got != tc.want {
			t.Errorf("BucketFor(%d) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestAggregate(t *testing.T) {
	cases := []struct {
		scores     []int
		wantScore  int
		wantBucket model.RiskBucket
	}{
		{[]int{30, 60}, 45, model.RiskMedium},
		{[]int{100}, 100, model.RiskHigh},
		{[]int{0, 0, 0}, 0, model.RiskLow},
		{[]int{10, 15}, 12, model.RiskLow}, // floor of 12.5
		{[]int{60, 60, 61}, 60, model.RiskHigh},
	}

	for _, tc := range cases {
		score, bucket := Aggregate(tc.scores)
		if score != tc.wantScore || bucket != tc.wantBucket {
			t.Errorf("Aggregate(%v) = (%d, %v), want (%d, %v)",
				tc.scores, score, bucket, tc.wantScore, tc.wantBucket)
		}
	}
}
