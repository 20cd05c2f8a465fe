// Package summary turns per-chunk model summaries into an ordered bulleted digest.
package summary

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/legal-digest/internal/chunking"
	"github.com/jonathan/legal-digest/internal/types"
)

const (
	// DefaultMinLength is the lower summary bound passed to the model
	DefaultMinLength = 40
	// DefaultMaxLength is the upper summary bound passed to the model
	DefaultMaxLength = 150
	// DefaultConcurrency bounds the number of in-flight chunk calls
	DefaultConcurrency = 4
)

// Summarizer is the summarization collaborator. Implementations must decode
// deterministically (no sampling).
type Summarizer interface {
	Summarize(ctx context.Context, chunk string, minLength, maxLength int) (string, error)
}

// SummarizerFunc adapts a function to the Summarizer interface
type SummarizerFunc func(ctx context.Context, chunk string, minLength, maxLength int) (string, error)

// Summarize calls f
func (f SummarizerFunc) Summarize(ctx context.Context, chunk string, minLength, maxLength int) (string, error) {
	return f(ctx, chunk, minLength, maxLength)
}

// Options controls chunking and model bounds
type Options struct {
	ChunkSize   int
	MinLength   int
	MaxLength   int
	Concurrency int
	// OnChunk, when set, is called after each chunk summary completes.
	// It may be called from several goroutines at once.
	OnChunk func(index, total int)
}

// DefaultOptions returns the bounds used by the original summarizer
func DefaultOptions() Options {
	return Options{
		ChunkSize:   chunking.DefaultChunkSize,
		MinLength:   DefaultMinLength,
		MaxLength:   DefaultMaxLength,
		Concurrency: DefaultConcurrency,
	}
}

// Assembler drives chunked summarization
type Assembler struct {
	summarizer Summarizer
	opts       Options
}

// NewAssembler creates an Assembler, validating the length bounds
func NewAssembler(summarizer Summarizer, opts Options) (*Assembler, error) {
	if summarizer == nil {
		return nil, &types.ConfigurationError{Field: "summarizer", Message: "is required"}
	}
	if opts.ChunkSize <= 0 {
		return nil, &types.ConfigurationError{Field: "chunk_size", Message: "must be positive"}
	}
	if opts.MinLength < 0 || opts.MaxLength <= 0 || opts.MinLength > opts.MaxLength {
		return nil, &types.ConfigurationError{
			Field:   "summary_length",
			Message: fmt.Sprintf("invalid bounds min=%d max=%d", opts.MinLength, opts.MaxLength),
		}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Assembler{summarizer: summarizer, opts: opts}, nil
}

// Assemble summarizes every chunk of text and reformats the concatenated
// narrative into bullets. Any failing chunk fails the whole call.
func (a *Assembler) Assemble(ctx context.Context, text string) (types.Summary, error) {
	chunks, err := chunking.Split(text, a.opts.ChunkSize)
	if err != nil {
		return types.Summary{}, err
	}
	if len(chunks) == 0 {
		return types.Summary{Bullets: []string{}}, nil
	}

	partials := make([]string, len(chunks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)

	for i, chunk := range chunks {
		g.Go(func() error {
			partial, err := a.summarizer.Summarize(gCtx, chunk, a.opts.MinLength, a.opts.MaxLength)
			if err != nil {
				return types.WrapCollaborator(types.StageSummarization,
					fmt.Sprintf("chunk %d of %d", i+1, len(chunks)), err)
			}
			partials[i] = partial
			if a.opts.OnChunk != nil {
				a.opts.OnChunk(i, len(chunks))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return types.Summary{}, err
	}

	log.Printf("[SUMMARY] Summarized %d chunks", len(chunks))

	return types.Summary{Bullets: BuildBullets(Concatenate(partials))}, nil
}

// Concatenate joins partial summaries in order, each followed by a separating space
func Concatenate(partials []string) string {
	var sb strings.Builder
	for _, p := range partials {
		sb.WriteString(p)
		sb.WriteString(" ")
	}
	return sb.String()
}

// BuildBullets splits a concatenated narrative on ". " and returns one bullet
// per non-blank statement. Every statement is trimmed and period-terminated.
func BuildBullets(narrative string) []string {
	candidates := strings.Split(narrative, ". ")
	bullets := make([]string, 0, len(candidates))
	for _, c := range candidates {
		statement := strings.TrimSpace(c)
		if statement == "" {
			continue
		}
		if !strings.HasSuffix(statement, ".") {
			statement += "."
		}
		bullets = append(bullets, types.BulletMarker+statement)
	}
	return bullets
}
