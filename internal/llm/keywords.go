package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jonathan/legal-digest/internal/prompts"
	"github.com/jonathan/legal-digest/internal/schemas"
	"github.com/jonathan/legal-digest/internal/types"
)

// keywordResponse is the JSON shape requested from the model
type keywordResponse struct {
	Keywords []types.Keyword `json:"keywords"`
}

// KeywordExtractor scores candidate key phrases of a document
type KeywordExtractor struct {
	client Client
	tier   ModelTier
}

// NewKeywordExtractor creates a KeywordExtractor using the lite tier
func NewKeywordExtractor(client Client) *KeywordExtractor {
	return &KeywordExtractor{client: client, tier: TierLite}
}

// ExtractKeywords asks for up to topN scored phrases. Terms are returned as
// the model produced them; normalization and ordering are left to the caller.
func (k *KeywordExtractor) ExtractKeywords(ctx context.Context, text string, topN int) ([]types.Keyword, error) {
	prompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeyExtractKeywords, map[string]string{
		"Text": text,
		"TopN": strconv.Itoa(topN),
	})
	if err != nil {
		return nil, err
	}

	raw, err := k.client.GenerateJSON(ctx, prompt, k.tier)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.KeywordsSchema, []byte(raw)); err != nil {
		return nil, fmt.Errorf("keyword response did not match schema: %w", err)
	}

	var resp keywordResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse keyword response: %w", err)
	}
	return resp.Keywords, nil
}
