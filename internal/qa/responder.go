// Package qa shapes question-answering collaborator output into answers with
// a percentage confidence.
package qa

import (
	"context"
	"math"
	"strings"

	"github.com/jonathan/legal-digest/internal/types"
)

// Answerer is the question-answering collaborator. Score is in [0,1].
type Answerer interface {
	AnswerQuestion(ctx context.Context, question, context string) (answer string, score float64, err error)
}

// AnswererFunc adapts a function to the Answerer interface
type AnswererFunc func(ctx context.Context, question, context string) (string, float64, error)

// AnswerQuestion calls f
func (f AnswererFunc) AnswerQuestion(ctx context.Context, question, context string) (string, float64, error) {
	return f(ctx, question, context)
}

// Responder validates questions and normalizes answers.
// Each call is independent: no retry and no caching.
type Responder struct {
	answerer Answerer
}

// NewResponder creates a Responder backed by answerer
func NewResponder(answerer Answerer) *Responder {
	return &Responder{answerer: answerer}
}

// Ask answers question against docContext
func (r *Responder) Ask(ctx context.Context, question, docContext string) (types.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return types.Answer{}, &types.ValidationError{Field: "question", Message: "missing question"}
	}
	if strings.TrimSpace(docContext) == "" {
		return types.Answer{}, &types.ValidationError{Field: "context", Message: "missing context"}
	}
	if r.answerer == nil {
		return types.Answer{}, &types.ConfigurationError{Field: "answerer", Message: "is required"}
	}

	answer, score, err := r.answerer.AnswerQuestion(ctx, question, docContext)
	if err != nil {
		return types.Answer{}, types.WrapCollaborator(types.StageQuestionAnswering, "question answering call", err)
	}

	return types.Answer{
		Answer:     answer,
		Confidence: Confidence(score),
	}, nil
}

// Confidence converts a raw [0,1] score into a percentage rounded to two
// decimals. Scores outside the range are clamped; NaN maps to 0.
func Confidence(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	score = math.Max(0, math.Min(1, score))
	return math.Round(score*100*100) / 100
}
