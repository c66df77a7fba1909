package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akostin/clauseguard/internal/model"
)

func sampleReport(t *testing.T) *model.Report {
	t.Helper()

	v, err := model.ParseStrict(`{"contract_type": "NDA", "clauses": [{"title": "Confidentiality", "text": "keep it secret"}]}`)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	rec, _ := model.RecordOf(v)

	return &model.Report{
		Source:     "contract.txt",
		AnalyzedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Provider:   "openai",
		Model:      "gpt-4o-mini",
		Parsed:     rec,
		ClauseHighlights: []model.ClauseHighlight{
			{Clause: model.Clause{Title: "Confidentiality", Text: "keep it secret"}, Score: 5, Bucket: model.RiskLow},
		},
		CompositeScore:  5,
		CompositeBucket: model.RiskLow,
	}
}

func TestRenderJSON(t *testing.T) {
	r := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "report.json")

	if err := r.RenderJSON(sampleReport(t), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if decoded["composite_risk_score"] != float64(5) {
		t.Errorf("Expected composite_risk_score=5, got %v", decoded["composite_risk_score"])
	}
	if decoded["composite_risk_bucket"] != "Low" {
		t.Errorf("Expected composite_risk_bucket=Low, got %v", decoded["composite_risk_bucket"])
	}
	parsed, ok := decoded["parsed"].(map[string]interface{})
	if !ok || parsed["contract_type"] != "NDA" {
		t.Errorf("Expected parsed record in output, got %v", decoded["parsed"])
	}
}

func TestRenderMarkdown(t *testing.T) {
	r := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := r.RenderMarkdown(sampleReport(t), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	md := string(data)

	for _, want := range []string{
		"# Contract Risk Report",
		"contract.txt",
		"Composite risk**: Low (5/100)",
		"| 1 | Confidentiality | 5 | Low |",
		"keep it secret",
		"## Extracted Fields",
		"```json",
		"not legal advice",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestRenderMarkdown_NoFooter(t *testing.T) {
	r := NewRenderer(false)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := r.RenderMarkdown(sampleReport(t), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "not legal advice") {
		t.Error("Expected footer omitted")
	}
}

func TestRenderMarkdown_RawWrapper(t *testing.T) {
	r := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "report.md")

	report := sampleReport(t)
	report.Parsed = model.RawRecord("no json here")

	if err := r.RenderMarkdown(report, path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "could not be parsed as JSON") {
		t.Error("Expected raw-output note for unparsed records")
	}
}

func TestRenderMarkdown_EscapesPipesInTitles(t *testing.T) {
	r := NewRenderer(false)
	path := filepath.Join(t.TempDir(), "report.md")

	report := sampleReport(t)
	report.ClauseHighlights[0].Title = "A | B"

	if err := r.RenderMarkdown(report, path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `A \| B`) {
		t.Error("Expected pipes escaped in the clause table")
	}
}
