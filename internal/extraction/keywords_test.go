package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/legal-digest/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordAdapter_SingleCallNormalized(t *testing.T) {
	calls := 0
	var gotTopN int
	adapter := NewKeywordAdapter(KeywordExtractorFunc(func(_ context.Context, text string, topN int) ([]types.Keyword, error) {
		calls++
		gotTopN = topN
		assert.Equal(t, "whole document", text)
		return []types.Keyword{
			{Term: "  Termination ", Score: 0.4},
			{Term: "PENALTY", Score: 0.9},
			{Term: "", Score: 0.8},
			{Term: "Notice", Score: 0.4},
		}, nil
	}))

	keywords, err := adapter.Extract(context.Background(), "whole document", DefaultClauseTopN)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, DefaultClauseTopN, gotTopN)
	assert.Equal(t, []types.Keyword{
		{Term: "penalty", Score: 0.9},
		{Term: "termination", Score: 0.4},
		{Term: "notice", Score: 0.4},
	}, keywords)
}

func TestKeywordAdapter_TruncatesToTopN(t *testing.T) {
	adapter := NewKeywordAdapter(KeywordExtractorFunc(func(context.Context, string, int) ([]types.Keyword, error) {
		return []types.Keyword{{Term: "a", Score: 3}, {Term: "b", Score: 2}, {Term: "c", Score: 1}}, nil
	}))

	keywords, err := adapter.Extract(context.Background(), "text", 2)
	require.NoError(t, err)
	assert.Len(t, keywords, 2)
	assert.Equal(t, "a", keywords[0].Term)
}

func TestKeywordAdapter_InvalidTopN(t *testing.T) {
	adapter := NewKeywordAdapter(KeywordExtractorFunc(func(context.Context, string, int) ([]types.Keyword, error) {
		t.Fatal("collaborator must not be called")
		return nil, nil
	}))

	_, err := adapter.Extract(context.Background(), "text", 0)
	var cfgErr *types.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestKeywordAdapter_CollaboratorError(t *testing.T) {
	adapter := NewKeywordAdapter(KeywordExtractorFunc(func(context.Context, string, int) ([]types.Keyword, error) {
		return nil, errors.New("model not loaded")
	}))

	_, err := adapter.Extract(context.Background(), "text", 5)
	var ce *types.CollaboratorError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, types.StageKeywordExtraction, ce.Stage)
	assert.Contains(t, err.Error(), "model not loaded")
}
