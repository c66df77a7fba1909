package llm

import (
	"strings"
	"testing"
)

func TestRenderPromptText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text passes through",
			input: "You are a helpful assistant.",
			want:  "You are a helpful assistant.",
		},
		{
			name:  "tags stripped",
			input: "<h1>Title</h1><p>Body text.</p>",
			want:  "Title Body text.",
		},
		{
			name:  "inline markup flattened",
			input: "<p>Use <b>bold</b> and <code>code</code> wisely.</p>",
			want:  "Use bold and code wisely.",
		},
		{
			name:  "script content dropped",
			input: "<p>visible</p><script>alert('hidden')</script>",
			want:  "visible",
		},
		{
			name:  "entities decoded",
			input: "<p>IP &amp; Ownership</p>",
			want:  "IP & Ownership",
		},
		{
			name:  "whitespace collapsed",
			input: "\n<p>line one</p>\n\n<p>line two</p>\n",
			want:  "line one line two",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RenderPromptText(tc.input); got != tc.want {
				t.Errorf("RenderPromptText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestDefaultSystemPrompts(t *testing.T) {
	prompts := DefaultSystemPrompts()

	if len(prompts) != 2 {
		t.Fatalf("Expected 2 default prompts, got %d", len(prompts))
	}

	for i, p := range prompts {
		if strings.Contains(p, "<") || strings.Contains(p, ">") {
			t.Errorf("Prompt %d still contains markup: %q", i, p)
		}
	}

	if !strings.Contains(prompts[0], "JSON") {
		t.Errorf("Expected extraction prompt to mention JSON, got %q", prompts[0])
	}
	if !strings.Contains(prompts[1], "summary") {
		t.Errorf("Expected summary prompt, got %q", prompts[1])
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt("THE CONTRACT BODY")

	if !strings.Contains(prompt, "THE CONTRACT BODY") {
		t.Error("Expected contract text embedded in the prompt")
	}
	for _, field := range []string{"contract_type", "parties", "clauses", "overall_risk"} {
		if !strings.Contains(prompt, field) {
			t.Errorf("Expected field %q in the prompt", field)
		}
	}
}

func TestSystemPromptsFor(t *testing.T) {
	custom := []string{"only this"}
	got := systemPromptsFor(ExtractRequest{SystemPrompts: custom})
	if len(got) != 1 || got[0] != "only this" {
		t.Errorf("Expected custom prompts verbatim, got %v", got)
	}

	got = systemPromptsFor(ExtractRequest{})
	if len(got) != len(DefaultSystemPrompts()) {
		t.Errorf("Expected defaults for empty request, got %v", got)
	}
}
