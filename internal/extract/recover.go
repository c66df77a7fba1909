package extract

import (
	"regexp"
	"strings"

	"github.com/akostin/clauseguard/internal/model"
)

// Recoverer turns arbitrary model output into a structured record, tolerating
// markdown code fences and surrounding prose. Recover never fails: when no
// object can be salvaged it returns the {"raw": ...} wrapper.
type Recoverer struct{}

// NewRecoverer creates a new recoverer.
func NewRecoverer() *Recoverer {
	return &Recoverer{}
}

// fenceOpen matches an opening code fence with an optional json language hint.
var fenceOpen = regexp.MustCompile("(?i)```(?:json)?\n")

// Recover extracts a structured record from raw. Strategies are tried in
// order, short-circuiting on the first success:
//  1. strict parse of the whole input, accepted only if it is an object;
//  2. strip markdown code fences;
//  3. scan the cleaned text for balanced {...} candidates, leftmost first;
//  4. wrap the original, unmodified input as {"raw": raw}.
func (r *Recoverer) Recover(raw string) model.Record {
	if v, err := model.ParseStrict(raw); err == nil {
		if rec, ok := model.RecordOf(v); ok {
			return rec
		}
	}

	cleaned := stripFences(raw)

	for start := 0; start < len(cleaned); start++ {
		if cleaned[start] != '{' {
			continue
		}
		if rec, ok := parseBalanced(cleaned, start); ok {
			return rec
		}
	}

	return model.RawRecord(raw)
}

// stripFences removes markdown code-fence delimiters anywhere in the text:
// first every opening fence (with optional "json" hint and newline), then any
// remaining bare fence tokens.
func stripFences(s string) string {
	s = fenceOpen.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, "```", "")
}

// parseBalanced scans forward from an opening brace, counting nesting depth.
// The substring ending at the first depth-zero close is parsed as a candidate;
// a candidate that fails to parse abandons this start position entirely.
//
// The scan does not distinguish braces inside quoted string literals, so a
// literal "{" or "}" in a string value can terminate the candidate early.
// This is a known limitation kept for predictable recovery results.
func parseBalanced(s string, start int) (model.Record, bool) {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				v, err := model.ParseStrict(s[start : i+1])
				if err != nil {
					return model.Record{}, false
				}
				rec, ok := model.RecordOf(v)
				return rec, ok
			}
		}
	}
	return model.Record{}, false
}
