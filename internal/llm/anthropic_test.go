package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnthropicProvider_ExtractFields(t *testing.T) {
	var lastReq anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if key := r.Header.Get("x-api-key"); key != "test-key" {
			t.Errorf("Unexpected api key header: %q", key)
		}
		if ver := r.Header.Get("anthropic-version"); ver == "" {
			t.Error("Missing anthropic-version header")
		}

		if err := json.NewDecoder(r.Body).Decode(&lastReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		resp := anthropicResponse{
			Model: lastReq.Model,
			Content: []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			}{
				{Type: "text", Text: `{"contract_type": "SOW"}`},
			},
		}
		resp.Usage.InputTokens = 100
		resp.Usage.OutputTokens = 20
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewAnthropicProvider failed: %v", err)
	}

	resp, err := p.ExtractFields(context.Background(), ExtractRequest{
		ContractText:  "contract body",
		SystemPrompts: []string{"alpha", "beta"},
	})
	if err != nil {
		t.Fatalf("ExtractFields failed: %v", err)
	}

	if resp.Content != `{"contract_type": "SOW"}` {
		t.Errorf("Unexpected content: %q", resp.Content)
	}
	if resp.TokensUsed != 120 {
		t.Errorf("Expected 120 tokens, got %d", resp.TokensUsed)
	}

	// Multiple system prompts collapse into one system string.
	if lastReq.System != "alpha\n\nbeta" {
		t.Errorf("Unexpected system string: %q", lastReq.System)
	}
	if len(lastReq.Messages) != 1 || lastReq.Messages[0].Role != "user" {
		t.Fatalf("Expected a single user message, got %+v", lastReq.Messages)
	}
	if !strings.Contains(lastReq.Messages[0].Content, "contract body") {
		t.Error("Expected contract text in the user message")
	}
	if lastReq.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("Expected default model, got %q", lastReq.Model)
	}
}

func TestAnthropicProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "invalid_request_error", "message": "bad model"}}`))
	}))
	defer srv.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewAnthropicProvider failed: %v", err)
	}

	_, err = p.ExtractFields(context.Background(), ExtractRequest{ContractText: "x"})
	if err == nil {
		t.Fatal("Expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "bad model") {
		t.Errorf("Expected API error message surfaced, got: %v", err)
	}
}
