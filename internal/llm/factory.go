package llm

import (
	"context"
	"fmt"
	"strings"
)

// Translator is implemented by providers that can translate document text to
// English. Translation is optional; callers should treat failures as
// best-effort and fall back to the original text.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// NewProvider creates a new LLM provider based on configuration. Extraction is
// mandatory for analysis, so an empty provider name is an error.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, fmt.Errorf("LLM provider not configured (supported: openai, anthropic, ollama)")

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
