package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/akostin/clauseguard/internal/pipeline"
	"github.com/akostin/clauseguard/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir-or-list-file>",
	Short: "Analyze multiple contract documents in parallel",
	Long: `Batch analyzes many documents concurrently:
- Given a directory, every .txt/.md document directly under it is analyzed
- Given a file, it is read as a list of document paths (one per line)
- Documents are processed in parallel with a configurable worker count
- LLM calls are rate limited per provider across all workers
- One JSON and one Markdown report is written per document

Example:
  clauseguard batch ./contracts
  clauseguard batch contracts.txt --concurrency 8 --output-dir ./reports
  clauseguard batch ./contracts --provider ollama --model llama3.1:8b`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./clauseguard-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")

	// Shared with analyze
	batchCmd.Flags().StringVar(&llmProvider, "provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "model", "gpt-4o-mini", "LLM model name")
	batchCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "custom API endpoint")
	batchCmd.Flags().IntVar(&maxTokens, "max-tokens", 2000, "max response tokens")
	batchCmd.Flags().StringArrayVar(&extraPrompts, "prompt", nil, "extra system prompt (repeatable, sent in order)")
	batchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max document bytes to read")
	batchCmd.Flags().BoolVar(&translate, "translate", false, "best-effort translation to English before analysis")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction-response cache")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist extraction responses to this directory")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	var results []*worker.AnalyzeResult
	if info.IsDir() {
		paths, err := worker.CollectDocuments(target)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no analyzable documents found in %s", target)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Analyzing %d documents with %d workers\n\n", len(paths), cfg.Concurrency.Workers)
		}
		results = processor.ProcessPaths(ctx, paths)
	} else {
		results, err = processor.ProcessList(ctx, target)
		if err != nil {
			return err
		}
	}

	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Error)
			continue
		}

		base := reportBase(res.Path)
		jsonPath := filepath.Join(outputDir, base+".json")
		mdPath := filepath.Join(outputDir, base+".md")

		if err := p.RenderReport(res.Report, jsonPath, mdPath, verbose); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: render: %v\n", res.Path, err)
		}
	}

	fmt.Printf("\nBatch complete: %d analyzed, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

// reportBase derives an output file stem from a document path.
func reportBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
