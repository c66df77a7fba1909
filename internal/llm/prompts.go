package llm

import (
	"strings"

	"golang.org/x/net/html"
)

// System prompts are authored in lightweight HTML so UIs can render them
// verbatim; RenderPromptText flattens them to plain text before they are sent
// as system messages.

// GeneralExtractorPrompt is the primary extraction instruction.
const GeneralExtractorPrompt = `
<h1>Contract Extraction Assistant</h1>
<p>You are a precise legal contracts extraction assistant. Your job is to read the provided contract
text and return a single, strictly valid JSON object containing the requested fields.</p>
<p>Return ONLY the JSON object in your response (no explanations, no footers).</p>
<ul>
  <li><b>Fields to return:</b> <i>contract_type, parties, effective_date, termination_clause, governing_law, amounts, obligations, liabilities, confidentiality, clauses, risk_indicators, overall_risk</i></li>
  <li><b>clauses</b> should be a list of objects with <code>title</code> and <code>text</code>.</li>
  <li>If a field is missing, use <code>null</code> or an empty list.</li>
</ul>
`

// IPFocusPrompt biases extraction toward intellectual-property clauses.
const IPFocusPrompt = `
<h2>IP &amp; Ownership Focus</h2>
<p>Prioritize identification of intellectual property, assignment, licensing, and work-for-hire clauses.</p>
<p>For each identified clause, add a short <code>recommended_action</code> string advising whether to retain, negotiate, or remove the clause.</p>
`

// PenaltiesFocusPrompt biases extraction toward penalty and indemnity clauses.
const PenaltiesFocusPrompt = `
<h2>Penalties &amp; Indemnity Focus</h2>
<p>Prioritize detection of penalty, indemnity, and liquidated damages clauses. Mark them as <code>severity</code>: Low/Medium/High and include a one-line rationale.</p>
`

// PlainEnglishSummaryPrompt asks for a business-English summary alongside the extraction.
const PlainEnglishSummaryPrompt = `
<h2>Plain English Summary</h2>
<p>Provide a short, 3-5 bullet summary in simple business English, avoiding legalese. This will be included in the UI but should not change the JSON extraction output.</p>
`

// DefaultSystemPrompts returns the default ordered prompt list, already
// rendered to plain text.
func DefaultSystemPrompts() []string {
	return []string{
		RenderPromptText(GeneralExtractorPrompt),
		RenderPromptText(PlainEnglishSummaryPrompt),
	}
}

// RenderPromptText flattens an HTML-authored prompt to the text a model should
// see. Plain-text input passes through unchanged apart from whitespace
// normalization.
func RenderPromptText(prompt string) string {
	doc, err := html.Parse(strings.NewReader(prompt))
	if err != nil {
		return strings.TrimSpace(prompt)
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String())
}
