package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/legal-digest/internal/prompts"
)

// Summarizer produces plain-prose summaries of document chunks
type Summarizer struct {
	client Client
	tier   ModelTier
}

// NewSummarizer creates a Summarizer using the lite tier
func NewSummarizer(client Client) *Summarizer {
	return &Summarizer{client: client, tier: TierLite}
}

// Summarize returns a summary of chunk whose length the model is asked to keep
// within [minLength, maxLength] words. Whitespace is collapsed so sentences
// are separated by single spaces.
func (s *Summarizer) Summarize(ctx context.Context, chunk string, minLength, maxLength int) (string, error) {
	prompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeySummarizeChunk, map[string]string{
		"Text":     chunk,
		"MinWords": strconv.Itoa(minLength),
		"MaxWords": strconv.Itoa(maxLength),
	})
	if err != nil {
		return "", err
	}

	text, err := s.client.GenerateContent(ctx, prompt, s.tier)
	if err != nil {
		return "", err
	}

	summary := strings.Join(strings.Fields(text), " ")
	if summary == "" {
		return "", fmt.Errorf("model returned an empty summary")
	}
	return summary, nil
}
