package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

// newChatServer serves canned chat-completion responses and records the last
// request body for assertions.
func newChatServer(t *testing.T, content string, lastReq *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Unexpected auth header: %q", auth)
		}

		if err := json.NewDecoder(r.Body).Decode(lastReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		resp := openai.ChatCompletionResponse{
			Model: lastReq.Model,
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}},
			},
			Usage: openai.Usage{TotalTokens: 123},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIProvider_ExtractFields(t *testing.T) {
	var lastReq openai.ChatCompletionRequest
	srv := newChatServer(t, `{"contract_type": "NDA"}`, &lastReq)
	defer srv.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "gpt-4o-mini", MaxTokens: 500})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	resp, err := p.ExtractFields(context.Background(), ExtractRequest{
		ContractText:  "the contract body",
		SystemPrompts: []string{"first instruction", "second instruction"},
	})
	if err != nil {
		t.Fatalf("ExtractFields failed: %v", err)
	}

	if resp.Content != `{"contract_type": "NDA"}` {
		t.Errorf("Unexpected content: %q", resp.Content)
	}
	if resp.TokensUsed != 123 {
		t.Errorf("Expected 123 tokens, got %d", resp.TokensUsed)
	}

	if lastReq.Model != "gpt-4o-mini" {
		t.Errorf("Expected configured model, got %q", lastReq.Model)
	}
	if lastReq.MaxTokens != 500 {
		t.Errorf("Expected max tokens 500, got %d", lastReq.MaxTokens)
	}

	// Two system messages in order, then the user prompt.
	if len(lastReq.Messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(lastReq.Messages))
	}
	if lastReq.Messages[0].Role != "system" || lastReq.Messages[0].Content != "first instruction" {
		t.Errorf("Unexpected first message: %+v", lastReq.Messages[0])
	}
	if lastReq.Messages[1].Content != "second instruction" {
		t.Errorf("Unexpected second message: %+v", lastReq.Messages[1])
	}
	user := lastReq.Messages[2]
	if user.Role != "user" || !strings.Contains(user.Content, "the contract body") {
		t.Errorf("Expected user message carrying the contract text, got %+v", user)
	}
	if !strings.Contains(user.Content, "contract_type") {
		t.Errorf("Expected field list in user prompt")
	}
}

func TestOpenAIProvider_DefaultSystemPrompts(t *testing.T) {
	var lastReq openai.ChatCompletionRequest
	srv := newChatServer(t, "{}", &lastReq)
	defer srv.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	if _, err := p.ExtractFields(context.Background(), ExtractRequest{ContractText: "text"}); err != nil {
		t.Fatalf("ExtractFields failed: %v", err)
	}

	defaults := DefaultSystemPrompts()
	if len(lastReq.Messages) != len(defaults)+1 {
		t.Fatalf("Expected %d messages, got %d", len(defaults)+1, len(lastReq.Messages))
	}
	for i, want := range defaults {
		if lastReq.Messages[i].Content != want {
			t.Errorf("System message %d mismatch:\n got:  %q\n want: %q", i, lastReq.Messages[i].Content, want)
		}
	}
}

func TestOpenAIProvider_ModelOverride(t *testing.T) {
	var lastReq openai.ChatCompletionRequest
	srv := newChatServer(t, "{}", &lastReq)
	defer srv.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	if _, err := p.ExtractFields(context.Background(), ExtractRequest{ContractText: "text", Model: "gpt-4o"}); err != nil {
		t.Fatalf("ExtractFields failed: %v", err)
	}
	if lastReq.Model != "gpt-4o" {
		t.Errorf("Expected per-request model override, got %q", lastReq.Model)
	}
}

func TestOpenAIProvider_Translate(t *testing.T) {
	var lastReq openai.ChatCompletionRequest
	srv := newChatServer(t, "  translated text \n", &lastReq)
	defer srv.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	out, err := p.Translate(context.Background(), "texte original")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "translated text" {
		t.Errorf("Expected trimmed translation, got %q", out)
	}
	if !strings.Contains(lastReq.Messages[1].Content, "texte original") {
		t.Errorf("Expected source text in user message")
	}
}

func TestNewOpenAIProvider_RequiresAPIKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{}); err == nil {
		t.Error("Expected error when API key is missing")
	}
}

func TestOpenAIProvider_ErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	if _, err := p.ExtractFields(context.Background(), ExtractRequest{ContractText: "text"}); err == nil {
		t.Error("Expected error for 429 response")
	}
}
