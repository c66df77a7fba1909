package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/akostin/clauseguard/internal/model"
)

// Renderer writes analysis reports as JSON and Markdown and prints console
// summaries.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Contract Risk Report\n\n")
	if report.Source != "" {
		fmt.Fprintf(&b, "- **Source**: %s\n", report.Source)
	}
	fmt.Fprintf(&b, "- **Analyzed**: %s\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))
	if report.Provider != "" {
		fmt.Fprintf(&b, "- **Provider**: %s (%s)\n", report.Provider, report.Model)
	}
	fmt.Fprintf(&b, "- **Composite risk**: %s (%d/100)\n\n", report.CompositeBucket, report.CompositeScore)

	b.WriteString("## Clause Highlights\n\n")
	b.WriteString("| # | Clause | Score | Bucket |\n")
	b.WriteString("|---|--------|-------|--------|\n")
	for i, h := range report.ClauseHighlights {
		title := h.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&b, "| %d | %s | %d | %s |\n", i+1, escapePipes(title), h.Score, h.Bucket)
	}
	b.WriteString("\n")

	for i, h := range report.ClauseHighlights {
		title := h.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&b, "### %d. %s — %s (%d)\n\n", i+1, title, h.Bucket, h.Score)
		if h.Text != "" {
			fmt.Fprintf(&b, "%s\n\n", h.Text)
		}
	}

	b.WriteString("## Extracted Fields\n\n")
	if report.Parsed.IsRawWrapper() {
		b.WriteString("The model response could not be parsed as JSON; the raw output is preserved in the JSON report.\n\n")
	} else {
		parsed, err := json.MarshalIndent(report.Parsed, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal parsed record: %w", err)
		}
		b.WriteString("```json\n")
		b.Write(parsed)
		b.WriteString("\n```\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by clauseguard. Keyword-based scoring is a heuristic aid, not legal advice.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints a short report summary to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	if report.Source != "" {
		fmt.Printf("Document:       %s\n", report.Source)
	}
	fmt.Printf("Composite risk: %s (%d/100)\n", report.CompositeBucket, report.CompositeScore)
	fmt.Printf("Clauses scored: %d\n", len(report.ClauseHighlights))
	for _, h := range report.ClauseHighlights {
		title := h.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("  - %-30s %3d  %s\n", truncateRunes(title, 30), h.Score, h.Bucket)
	}
	if report.Parsed.IsRawWrapper() {
		fmt.Println("Note: model output was not valid JSON; raw text kept in the report.")
	}
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// RenderReport renders the report to the requested outputs and always prints
// the stdout summary.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}
