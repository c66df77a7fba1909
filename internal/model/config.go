package model

import "time"

// Config is the full runtime configuration.
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Reader      ReaderConfig      `yaml:"reader"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig configures the field-extraction provider.
type LLMConfig struct {
	Provider  string `yaml:"provider"`   // openai, anthropic, ollama
	Model     string `yaml:"model"`      // Provider-specific model name
	APIKey    string `yaml:"api_key"`    // Prefer env vars over the config file
	BaseURL   string `yaml:"base_url"`   // Custom endpoint (e.g. Ollama, proxies)
	Timeout   int    `yaml:"timeout"`    // Seconds per API request
	MaxTokens int    `yaml:"max_tokens"` // Response length limit

	// ExtraPrompts are additional system prompts appended by the caller,
	// e.g. to bias extraction toward IP or penalty clauses.
	ExtraPrompts []string `yaml:"extra_prompts"`

	// RequestsPerSecond / Burst throttle calls per provider.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// CacheConfig configures the extraction-response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"` // Disk layer location; empty disables the disk layer
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig configures batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// ReaderConfig configures document loading.
type ReaderConfig struct {
	MaxBytes  int64 `yaml:"max_bytes"` // Max document size to read
	Translate bool  `yaml:"translate"` // Best-effort translation to English before analysis
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:          "openai",
			Model:             "gpt-4o-mini",
			Timeout:           60,
			MaxTokens:         2000,
			RequestsPerSecond: 2,
			Burst:             2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Reader: ReaderConfig{
			MaxBytes: 2_000_000,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
