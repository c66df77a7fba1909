package llm

import (
	"context"
	"strings"

	"github.com/akostin/clauseguard/internal/model"
)

// Provider defines the interface for LLM field-extraction providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// ExtractFields asks the model to extract structured contract fields and
	// returns the raw assistant content. The content is nominally a JSON
	// document but is not guaranteed to be one; recovery happens downstream.
	ExtractFields(ctx context.Context, req ExtractRequest) (*ExtractResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// ExtractRequest contains the input for field extraction.
type ExtractRequest struct {
	// ContractText is the plain text of the contract.
	ContractText string

	// SystemPrompts are system-level instruction strings, sent in order.
	// When empty, DefaultSystemPrompts is used.
	SystemPrompts []string

	// Model overrides the configured model for this request.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// ExtractResponse contains the provider's output.
type ExtractResponse struct {
	// Content is the verbatim assistant output.
	Content string

	// Model is the model that generated the response.
	Model string

	// TokensUsed tracks token consumption when the provider reports it.
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "openai",
		Model:     "gpt-4o-mini",
		Timeout:   60,
		MaxTokens: 2000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:   c.Provider,
		Model:      c.Model,
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		Timeout:    c.Timeout,
		MaxTokens:  c.MaxTokens,
		HTTPProxy:  c.HTTPProxy,
		HTTPSProxy: c.HTTPSProxy,
		NoProxy:    c.NoProxy,
	}
}

// BuildUserPrompt constructs the field-extraction prompt for a contract.
func BuildUserPrompt(contractText string) string {
	var b strings.Builder
	b.WriteString("You are a legal contracts analysis assistant.\n")
	b.WriteString("Extract the following fields from the provided contract text and return a single JSON object. ")
	b.WriteString("Fields: contract_type, parties (list), effective_date, termination_clause (text), governing_law, ")
	b.WriteString("amounts (list), obligations (list), liabilities (list), confidentiality (boolean + summary), ")
	b.WriteString("clauses (list of {title, text}), risk_indicators (list), overall_risk (Low/Medium/High).\n")
	b.WriteString("Return strictly valid JSON. If you can't find a field, use null or an empty list as appropriate.\n\n")
	b.WriteString("CONTRACT TEXT:\n")
	b.WriteString(contractText)
	return b.String()
}

// systemPromptsFor resolves the effective system prompts for a request.
func systemPromptsFor(req ExtractRequest) []string {
	if len(req.SystemPrompts) > 0 {
		return req.SystemPrompts
	}
	return DefaultSystemPrompts()
}
