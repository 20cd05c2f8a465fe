package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/legal-digest/internal/prompts"
	"github.com/jonathan/legal-digest/internal/schemas"
)

type answerResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}

// Answerer performs extractive question answering over a context
type Answerer struct {
	client Client
	tier   ModelTier
}

// NewAnswerer creates an Answerer using the standard tier
func NewAnswerer(client Client) *Answerer {
	return &Answerer{client: client, tier: TierStandard}
}

// AnswerQuestion returns an answer span and a raw score in [0,1].
// A span that does not occur in the context scores 0.
func (a *Answerer) AnswerQuestion(ctx context.Context, question, docContext string) (string, float64, error) {
	prompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeyAnswerQuestion, map[string]string{
		"Question": question,
		"Context":  docContext,
	})
	if err != nil {
		return "", 0, err
	}

	raw, err := a.client.GenerateJSON(ctx, prompt, a.tier)
	if err != nil {
		return "", 0, err
	}

	if err := schemas.Validate(schemas.AnswerSchema, []byte(raw)); err != nil {
		return "", 0, fmt.Errorf("answer response did not match schema: %w", err)
	}

	var resp answerResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return "", 0, fmt.Errorf("failed to parse answer response: %w", err)
	}

	span := strings.TrimSpace(resp.Answer)
	if span == "" || !strings.Contains(docContext, span) {
		return resp.Answer, 0, nil
	}
	return resp.Answer, resp.Score, nil
}
