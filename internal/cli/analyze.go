package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akostin/clauseguard/internal/model"
	"github.com/akostin/clauseguard/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	llmProvider  string
	llmModel     string
	llmBaseURL   string
	maxTokens    int
	extraPrompts []string
	maxBytes     int64
	noCache      bool
	cacheDir     string
	noFooter     bool
	translate    bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single contract document and generate a risk report",
	Long: `Analyze reads a plain-text contract document and:
- Asks the configured LLM to extract structured fields (parties, dates,
  clauses, obligations, liabilities)
- Salvages a well-formed JSON record from the model output, tolerating
  code fences and surrounding commentary
- Scores every identified clause against a fixed risk keyword table
- Aggregates clause scores into a composite risk score and bucket

Example:
  clauseguard analyze contract.txt
  clauseguard analyze contract.txt --json report.json --md report.md
  clauseguard analyze contract.txt --provider ollama --model llama3.1:8b
  clauseguard analyze contract.txt --prompt "Focus on IP and licensing clauses."`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	analyzeCmd.Flags().StringVar(&llmProvider, "provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "model", "gpt-4o-mini", "LLM model name")
	analyzeCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "custom API endpoint (e.g. an OpenAI-compatible proxy)")
	analyzeCmd.Flags().IntVar(&maxTokens, "max-tokens", 2000, "max response tokens")
	analyzeCmd.Flags().StringArrayVar(&extraPrompts, "prompt", nil, "extra system prompt (repeatable, sent in order)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "overall analysis timeout")

	// Document flags
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max document bytes to read")
	analyzeCmd.Flags().BoolVar(&translate, "translate", false, "best-effort translation to English before analysis")

	// Cache flags
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction-response cache")
	analyzeCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist extraction responses to this directory")
}

// buildConfig assembles the runtime configuration from flags and environment.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.BaseURL = llmBaseURL
	cfg.LLM.MaxTokens = maxTokens
	cfg.LLM.ExtraPrompts = extraPrompts
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Reader.MaxBytes = maxBytes
	cfg.Reader.Translate = translate
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// API keys come from the environment, never from flags.
	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Provider: %s (%s)\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.AnalyzeFile(ctx, path)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Scored %d clauses\n", len(report.ClauseHighlights))
		fmt.Fprintf(os.Stderr, "✓ Composite risk: %s (%d/100)\n", report.CompositeBucket, report.CompositeScore)
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
