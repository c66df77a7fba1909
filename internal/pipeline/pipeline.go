package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/akostin/clauseguard/internal/cache"
	"github.com/akostin/clauseguard/internal/extract"
	"github.com/akostin/clauseguard/internal/llm"
	"github.com/akostin/clauseguard/internal/model"
	"github.com/akostin/clauseguard/internal/score"
	"github.com/akostin/clauseguard/internal/worker"
)

// fallbackBodyChars bounds the display body of the synthetic clause. The
// truncation is presentational only: the synthetic clause is always scored on
// the full contract text.
const fallbackBodyChars = 1000

// ExtractFunc obtains raw model output for a contract: text plus system-level
// instruction strings plus a model identifier in, a single string out. The
// string is nominally JSON but nothing downstream assumes it is.
type ExtractFunc func(ctx context.Context, contractText string, systemPrompts []string, modelName string) (string, error)

// Pipeline orchestrates the complete analysis: field extraction, structure
// recovery, clause risk scoring, and aggregation.
type Pipeline struct {
	recoverer  *extract.Recoverer
	scorer     *score.Scorer
	renderer   *Renderer
	extractor  ExtractFunc
	translator llm.Translator // nil unless translation is enabled and supported
	provider   string
	config     *model.Config
}

// NewPipeline creates a pipeline backed by the configured LLM provider, with
// response caching and per-provider rate limiting.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	limiter := worker.NewLimiter(cfg.LLM.RequestsPerSecond, cfg.LLM.Burst)

	var translator llm.Translator
	if cfg.Reader.Translate {
		if tr, ok := provider.(llm.Translator); ok {
			translator = tr
		} else {
			fmt.Printf("Warning: provider %s does not support translation, continuing without it\n", provider.Name())
		}
	}

	return &Pipeline{
		recoverer:  extract.NewRecoverer(),
		scorer:     score.NewScorer(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		extractor:  providerExtractor(provider, store, limiter),
		translator: translator,
		provider:   provider.Name(),
		config:     cfg,
	}, nil
}

// NewPipelineWithExtractor creates a pipeline around a custom field-extraction
// collaborator. Used by tests and by callers that bring their own transport.
func NewPipelineWithExtractor(cfg *model.Config, fn ExtractFunc) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	return &Pipeline{
		recoverer: extract.NewRecoverer(),
		scorer:    score.NewScorer(),
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		extractor: fn,
		provider:  cfg.LLM.Provider,
		config:    cfg,
	}
}

// providerExtractor wraps a provider call with response caching and rate
// limiting. Cache hits skip both the limiter and the API call.
func providerExtractor(provider llm.Provider, store cache.Cache, limiter *worker.Limiter) ExtractFunc {
	return func(ctx context.Context, contractText string, systemPrompts []string, modelName string) (string, error) {
		key := cache.Key(provider.Name(), modelName, systemPrompts, contractText)

		if store != nil {
			if data, ok := store.Get(key); ok {
				return string(data), nil
			}
		}

		if limiter != nil {
			if err := limiter.Wait(ctx, provider.Name()); err != nil {
				return "", err
			}
		}

		resp, err := provider.ExtractFields(ctx, llm.ExtractRequest{
			ContractText:  contractText,
			SystemPrompts: systemPrompts,
			Model:         modelName,
		})
		if err != nil {
			return "", err
		}

		if store != nil {
			_ = store.Set(key, []byte(resp.Content), 0)
		}

		return resp.Content, nil
	}
}

// Analyze runs the full analysis over contract text. Extraction failures
// propagate unchanged; everything after extraction is total and cannot fail.
func (p *Pipeline) Analyze(ctx context.Context, contractText string, extraSystemPrompts []string, modelName string) (*model.Report, error) {
	rawText, err := p.extractor(ctx, contractText, extraSystemPrompts, modelName)
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}

	parsed := p.recoverer.Recover(rawText)

	highlights := p.scoreClauses(parsed, contractText)

	scores := make([]int, len(highlights))
	for i, h := range highlights {
		scores[i] = h.Score
	}
	composite, bucket := score.Aggregate(scores)

	reportModel := modelName
	if reportModel == "" {
		reportModel = p.config.LLM.Model
	}

	return &model.Report{
		AnalyzedAt:       time.Now().UTC(),
		Provider:         p.provider,
		Model:            reportModel,
		RawModelText:     rawText,
		Parsed:           parsed,
		ClauseHighlights: highlights,
		CompositeScore:   composite,
		CompositeBucket:  bucket,
	}, nil
}

// AnalyzeFile loads a contract document, optionally translates it, and
// analyzes it with the configured extra prompts.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	text, err := ReadDocument(path, p.config.Reader.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	if p.translator != nil {
		// Best-effort: any translation failure keeps the original text.
		if translated, err := p.translator.Translate(ctx, text); err == nil && translated != "" {
			text = translated
		}
	}

	report, err := p.Analyze(ctx, text, p.config.LLM.ExtraPrompts, "")
	if err != nil {
		return nil, err
	}

	report.Source = path
	return report, nil
}

// scoreClauses derives the clause list from the recovered record and scores
// each clause. The result is never empty: without a usable "clauses" list a
// single synthetic clause covers the whole document.
func (p *Pipeline) scoreClauses(parsed model.Record, contractText string) []model.ClauseHighlight {
	clauses := deriveClauses(parsed)

	if len(clauses) == 0 {
		s := p.scorer.Score(contractText)
		return []model.ClauseHighlight{{
			Clause: model.Clause{Text: truncateRunes(contractText, fallbackBodyChars)},
			Score:  s,
			Bucket: score.BucketFor(s),
		}}
	}

	highlights := make([]model.ClauseHighlight, 0, len(clauses))
	for _, c := range clauses {
		s := p.scorer.Score(c.Text)
		highlights = append(highlights, model.ClauseHighlight{
			Clause: c,
			Score:  s,
			Bucket: score.BucketFor(s),
		})
	}
	return highlights
}

// deriveClauses destructures the record's "clauses" entries. Malformed entries
// are tolerated: missing fields default to empty rather than failing.
func deriveClauses(parsed model.Record) []model.Clause {
	v, ok := parsed.Get("clauses")
	if !ok || v.Kind() != model.KindArray || len(v.Array()) == 0 {
		return nil
	}

	entries := v.Array()
	clauses := make([]model.Clause, 0, len(entries))
	for _, entry := range entries {
		switch entry.Kind() {
		case model.KindObject:
			var c model.Clause
			if title, ok := entry.Get("title"); ok && title.Kind() == model.KindString {
				c.Title = title.Text()
			}
			if body, ok := entry.Get("text"); ok && body.Kind() == model.KindString {
				c.Text = body.Text()
			}
			clauses = append(clauses, c)
		case model.KindString:
			clauses = append(clauses, model.Clause{Text: entry.Text()})
		default:
			clauses = append(clauses, model.Clause{})
		}
	}
	return clauses
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
