package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jonathan/legal-digest/internal/extraction"
	"github.com/jonathan/legal-digest/internal/qa"
	"github.com/jonathan/legal-digest/internal/summary"
	"github.com/jonathan/legal-digest/internal/types"
)

// Guard bounds collaborator calls with a per-attempt timeout and optional
// exponential-backoff retry.
type Guard struct {
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
}

// Do runs fn until it succeeds, the attempts are spent or ctx ends.
// A per-attempt timeout surfaces as a CollaboratorError with TimedOut set.
// Validation and configuration errors are never retried.
func (g Guard) Do(ctx context.Context, stage types.Stage, retry bool, fn func(ctx context.Context) error) error {
	_, err := guarded(ctx, g, stage, retry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// newBackOff doubles the wait between attempts without jitter. Attempts are
// capped by MaxAttempts, never by elapsed time.
func (g Guard) newBackOff(ctx context.Context, attempts int) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.InitialBackoff
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}

// guarded runs fn under g. Each attempt's result only reaches the caller
// through a channel, so a result that arrives after its timeout is dropped.
func guarded[T any](ctx context.Context, g Guard, stage types.Stage, retry bool, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := 1
	if retry && g.MaxAttempts > 1 {
		attempts = g.MaxAttempts
	}

	var out T
	attempt := 0
	op := func() error {
		attempt++
		v, err := attemptOnce(ctx, g, stage, fn)
		if err == nil {
			out = v
			return nil
		}
		if ctx.Err() != nil || !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		log.Printf("[RETRY] %s attempt %d/%d failed: %v (next in %s)", stage, attempt, attempts, err, next)
	}

	if err := backoff.RetryNotify(op, g.newBackOff(ctx, attempts), notify); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

type attemptResult[T any] struct {
	val T
	err error
}

func attemptOnce[T any](ctx context.Context, g Guard, stage types.Stage, fn func(ctx context.Context) (T, error)) (T, error) {
	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if g.Timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, g.Timeout)
	}
	defer cancel()

	done := make(chan attemptResult[T], 1)
	go func() {
		v, err := fn(callCtx)
		done <- attemptResult[T]{val: v, err: err}
	}()

	var zero T
	select {
	case r := <-done:
		if r.err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return zero, g.timeoutError(stage, r.err)
		}
		return r.val, r.err
	case <-callCtx.Done():
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return zero, g.timeoutError(stage, callCtx.Err())
	}
}

func (g Guard) timeoutError(stage types.Stage, cause error) error {
	return &types.CollaboratorError{
		Stage:    stage,
		Message:  fmt.Sprintf("no response within %s", g.Timeout),
		TimedOut: true,
		Cause:    cause,
	}
}

func retryable(err error) bool {
	var validationErr *types.ValidationError
	var configErr *types.ConfigurationError
	return !errors.As(err, &validationErr) && !errors.As(err, &configErr)
}

// guardedSummarizer retries chunk summaries
type guardedSummarizer struct {
	next  summary.Summarizer
	guard Guard
}

func (s guardedSummarizer) Summarize(ctx context.Context, chunk string, minLength, maxLength int) (string, error) {
	return guarded(ctx, s.guard, types.StageSummarization, true, func(ctx context.Context) (string, error) {
		return s.next.Summarize(ctx, chunk, minLength, maxLength)
	})
}

// guardedKeywords retries the whole-document keyword call
type guardedKeywords struct {
	next  extraction.KeywordExtractor
	guard Guard
}

func (k guardedKeywords) ExtractKeywords(ctx context.Context, text string, topN int) ([]types.Keyword, error) {
	return guarded(ctx, k.guard, types.StageKeywordExtraction, true, func(ctx context.Context) ([]types.Keyword, error) {
		return k.next.ExtractKeywords(ctx, text, topN)
	})
}

type scoredAnswer struct {
	text  string
	score float64
}

// guardedAnswerer applies the timeout only; answers are never retried
type guardedAnswerer struct {
	next  qa.Answerer
	guard Guard
}

func (a guardedAnswerer) AnswerQuestion(ctx context.Context, question, docContext string) (string, float64, error) {
	res, err := guarded(ctx, a.guard, types.StageQuestionAnswering, false, func(ctx context.Context) (scoredAnswer, error) {
		answer, score, err := a.next.AnswerQuestion(ctx, question, docContext)
		return scoredAnswer{text: answer, score: score}, err
	})
	return res.text, res.score, err
}
