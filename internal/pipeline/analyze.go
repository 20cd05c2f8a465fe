// Package pipeline orchestrates document analysis: chunked summarization,
// keyword extraction, clause and risk extraction, and question answering.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/legal-digest/internal/chunking"
	"github.com/jonathan/legal-digest/internal/config"
	"github.com/jonathan/legal-digest/internal/extraction"
	"github.com/jonathan/legal-digest/internal/qa"
	"github.com/jonathan/legal-digest/internal/summary"
	"github.com/jonathan/legal-digest/internal/types"
)

// Default collaborator guard values
const (
	DefaultTimeout        = 60 * time.Second
	DefaultMaxAttempts    = 3
	DefaultInitialBackoff = 500 * time.Millisecond
)

// Options holds the collaborators and limits of an Analyzer
type Options struct {
	Summarizer       summary.Summarizer
	KeywordExtractor extraction.KeywordExtractor
	Answerer         qa.Answerer

	ChunkSize          int
	SummaryMinLength   int
	SummaryMaxLength   int
	SummaryConcurrency int

	// KeywordTopN is requested from the collaborator and feeds clause matching.
	// DigestKeywords of those are reported in the digest.
	KeywordTopN    int
	DigestKeywords int

	ClauseCap       int
	ClauseMinLength int
	RiskCap         int
	RiskMinLength   int
	RiskVocabulary  extraction.RiskVocabulary

	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
}

// DefaultOptions returns the standard limits with no collaborators set
func DefaultOptions() Options {
	return Options{
		ChunkSize:          chunking.DefaultChunkSize,
		SummaryMinLength:   summary.DefaultMinLength,
		SummaryMaxLength:   summary.DefaultMaxLength,
		SummaryConcurrency: summary.DefaultConcurrency,
		KeywordTopN:        extraction.DefaultClauseTopN,
		DigestKeywords:     extraction.DefaultSummaryTopN,
		ClauseCap:          extraction.DefaultClauseCap,
		ClauseMinLength:    extraction.DefaultClauseMinLength,
		RiskCap:            extraction.DefaultRiskCap,
		RiskMinLength:      extraction.DefaultRiskMinLength,
		RiskVocabulary:     extraction.DefaultRiskVocabulary(),
		Timeout:            DefaultTimeout,
		MaxAttempts:        DefaultMaxAttempts,
		InitialBackoff:     DefaultInitialBackoff,
	}
}

// OptionsFromConfig maps loaded configuration onto Options.
// Collaborators still have to be set by the caller.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	a := cfg.Analysis
	opts.ChunkSize = a.ChunkSize
	opts.SummaryMinLength = a.SummaryMinLength
	opts.SummaryMaxLength = a.SummaryMaxLength
	opts.SummaryConcurrency = a.SummaryConcurrency
	opts.KeywordTopN = a.KeywordTopN
	opts.ClauseCap = a.ClauseCap
	opts.ClauseMinLength = a.ClauseMinLength
	opts.RiskCap = a.RiskCap
	opts.RiskMinLength = a.RiskMinLength
	opts.RiskVocabulary = a.RiskVocabulary
	opts.Timeout = cfg.Collaborators.Timeout
	opts.MaxAttempts = cfg.Collaborators.MaxAttempts
	opts.InitialBackoff = cfg.Collaborators.InitialBackoff
	return opts
}

// Analyzer runs the analysis pipeline. It holds no per-request state and is
// safe for concurrent use.
type Analyzer struct {
	opts        Options
	summaryOpts summary.Options
	summarizer  summary.Summarizer
	keywords    *extraction.KeywordAdapter
	responder   *qa.Responder
}

// New validates opts and wires the guarded collaborators
func New(opts Options) (*Analyzer, error) {
	if opts.Summarizer == nil {
		return nil, &types.ConfigurationError{Field: "summarizer", Message: "is required"}
	}
	if opts.KeywordExtractor == nil {
		return nil, &types.ConfigurationError{Field: "keyword_extractor", Message: "is required"}
	}
	if opts.Answerer == nil {
		return nil, &types.ConfigurationError{Field: "answerer", Message: "is required"}
	}

	positive := []struct {
		field string
		value int
	}{
		{"keyword_top_n", opts.KeywordTopN},
		{"digest_keywords", opts.DigestKeywords},
		{"clause_cap", opts.ClauseCap},
		{"risk_cap", opts.RiskCap},
		{"max_attempts", opts.MaxAttempts},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return nil, &types.ConfigurationError{Field: p.field, Message: fmt.Sprintf("must be positive, got %d", p.value)}
		}
	}
	if opts.ClauseMinLength < 0 {
		return nil, &types.ConfigurationError{Field: "clause_min_length", Message: "must not be negative"}
	}
	if opts.RiskMinLength < 0 {
		return nil, &types.ConfigurationError{Field: "risk_min_length", Message: "must not be negative"}
	}
	if opts.Timeout < 0 || opts.InitialBackoff < 0 {
		return nil, &types.ConfigurationError{Field: "collaborators", Message: "durations must not be negative"}
	}
	if err := opts.RiskVocabulary.Validate(); err != nil {
		return nil, err
	}

	guard := Guard{
		Timeout:        opts.Timeout,
		MaxAttempts:    opts.MaxAttempts,
		InitialBackoff: opts.InitialBackoff,
	}

	a := &Analyzer{
		opts: opts,
		summaryOpts: summary.Options{
			ChunkSize:   opts.ChunkSize,
			MinLength:   opts.SummaryMinLength,
			MaxLength:   opts.SummaryMaxLength,
			Concurrency: opts.SummaryConcurrency,
		},
		summarizer: guardedSummarizer{next: opts.Summarizer, guard: guard},
		keywords:   extraction.NewKeywordAdapter(guardedKeywords{next: opts.KeywordExtractor, guard: guard}),
		responder:  qa.NewResponder(guardedAnswerer{next: opts.Answerer, guard: guard}),
	}

	// Surface chunk and length errors at construction
	if _, err := summary.NewAssembler(a.summarizer, a.summaryOpts); err != nil {
		return nil, err
	}
	return a, nil
}

// Analyze produces the digest of text. Summary assembly and keyword
// extraction overlap; any stage failure fails the whole call.
// onProgress may be nil.
func (a *Analyzer) Analyze(ctx context.Context, text string, onProgress ProgressCallback) (*types.Digest, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &types.ValidationError{Field: "text", Message: "missing document text"}
	}

	id := uuid.New()
	progress := newProgress(id.String(), onProgress)
	start := time.Now()
	log.Printf("[ANALYZE] %s: analyzing %d characters", id, utf8.RuneCountInString(text))

	summaryOpts := a.summaryOpts
	summaryOpts.OnChunk = func(index, total int) {
		progress.emit(StageChunk, fmt.Sprintf("Summarized chunk %d of %d", index+1, total), nil)
	}
	assembler, err := summary.NewAssembler(a.summarizer, summaryOpts)
	if err != nil {
		return nil, err
	}

	var digestSummary types.Summary
	var keywords []types.Keyword

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := assembler.Assemble(gCtx, text)
		if err != nil {
			return err
		}
		digestSummary = s
		progress.emit(StageSummary, fmt.Sprintf("Built %d summary bullets", len(s.Bullets)), s)
		return nil
	})

	g.Go(func() error {
		kws, err := a.keywords.Extract(gCtx, text, a.opts.KeywordTopN)
		if err != nil {
			return err
		}
		keywords = kws
		progress.emit(StageKeywords, fmt.Sprintf("Extracted %d keywords", len(kws)), nil)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("[ANALYZE] %s: failed after %s: %v", id, time.Since(start).Round(time.Millisecond), err)
		return nil, err
	}

	sentences := extraction.SplitSentences(text)
	progress.emit(StageSegmentation, fmt.Sprintf("Segmented %d sentences", len(sentences)), nil)

	clauses := extraction.ExtractClauses(sentences, keywords, extraction.ClauseOptions{
		Cap:       a.opts.ClauseCap,
		MinLength: a.opts.ClauseMinLength,
	})
	progress.emit(StageClauses, fmt.Sprintf("Found %d clauses", len(clauses)), clauses)

	risks := extraction.ExtractRisks(sentences, a.opts.RiskVocabulary, extraction.RiskOptions{
		Cap:       a.opts.RiskCap,
		MinLength: a.opts.RiskMinLength,
	})
	progress.emit(StageRisks, fmt.Sprintf("Flagged %d risks", len(risks)), risks)

	reported := keywords
	if len(reported) > a.opts.DigestKeywords {
		reported = reported[:a.opts.DigestKeywords]
	}

	digest := &types.Digest{
		ID:        id,
		Summary:   digestSummary,
		Clauses:   clauses,
		Risks:     risks,
		Keywords:  reported,
		Context:   text,
		CreatedAt: time.Now().UTC(),
	}

	log.Printf("[ANALYZE] %s: %d bullets, %d clauses, %d risks in %s",
		id, len(digestSummary.Bullets), len(clauses), len(risks), time.Since(start).Round(time.Millisecond))
	progress.emit(StageComplete, "Analysis complete", nil)

	return digest, nil
}

// Ask answers question against docContext. Answers are timeout-guarded but
// never retried.
func (a *Analyzer) Ask(ctx context.Context, question, docContext string) (types.Answer, error) {
	return a.responder.Ask(ctx, question, docContext)
}
