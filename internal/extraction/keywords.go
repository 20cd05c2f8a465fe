package extraction

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/legal-digest/internal/types"
)

const (
	// DefaultClauseTopN is the keyword cap used for clause detection
	DefaultClauseTopN = 15
	// DefaultSummaryTopN is the keyword cap for the keyword listing in a digest
	DefaultSummaryTopN = 10
)

// KeywordExtractor is the keyword-extraction collaborator. It returns up to
// topN keywords ordered by descending relevance.
type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, text string, topN int) ([]types.Keyword, error)
}

// KeywordExtractorFunc adapts a function to the KeywordExtractor interface
type KeywordExtractorFunc func(ctx context.Context, text string, topN int) ([]types.Keyword, error)

// ExtractKeywords calls f
func (f KeywordExtractorFunc) ExtractKeywords(ctx context.Context, text string, topN int) ([]types.Keyword, error) {
	return f(ctx, text, topN)
}

// KeywordAdapter normalizes collaborator keywords for case-insensitive matching
type KeywordAdapter struct {
	extractor KeywordExtractor
}

// NewKeywordAdapter wraps a keyword extractor
func NewKeywordAdapter(extractor KeywordExtractor) *KeywordAdapter {
	return &KeywordAdapter{extractor: extractor}
}

// Extract calls the collaborator exactly once with the whole document and
// returns at most topN lower-cased keywords, highest score first.
func (a *KeywordAdapter) Extract(ctx context.Context, text string, topN int) ([]types.Keyword, error) {
	if topN <= 0 {
		return nil, &types.ConfigurationError{
			Field:   "keyword_top_n",
			Message: fmt.Sprintf("must be positive, got %d", topN),
		}
	}
	if a.extractor == nil {
		return nil, &types.ConfigurationError{Field: "keyword_extractor", Message: "is required"}
	}

	raw, err := a.extractor.ExtractKeywords(ctx, text, topN)
	if err != nil {
		return nil, types.WrapCollaborator(types.StageKeywordExtraction, "keyword extraction call", err)
	}

	keywords := make([]types.Keyword, 0, len(raw))
	for _, kw := range raw {
		term := strings.ToLower(strings.TrimSpace(kw.Term))
		if term == "" {
			continue
		}
		keywords = append(keywords, types.Keyword{Term: term, Score: kw.Score})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Score > keywords[j].Score
	})

	if len(keywords) > topN {
		keywords = keywords[:topN]
	}

	return keywords, nil
}
