package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/legal-digest/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSummarizer echoes a fixed summary per chunk, keyed by chunk content
type fakeSummarizer struct {
	mu      sync.Mutex
	calls   []string
	bounds  [][2]int
	respond func(chunk string) (string, error)
}

func (f *fakeSummarizer) Summarize(_ context.Context, chunk string, minLength, maxLength int) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, chunk)
	f.bounds = append(f.bounds, [2]int{minLength, maxLength})
	f.mu.Unlock()
	return f.respond(chunk)
}

func TestNewAssembler_Validation(t *testing.T) {
	s := &fakeSummarizer{}
	tests := []struct {
		name string
		opts Options
		sum  Summarizer
	}{
		{name: "nil summarizer", opts: DefaultOptions(), sum: nil},
		{name: "zero chunk size", opts: Options{ChunkSize: 0, MinLength: 40, MaxLength: 150}, sum: s},
		{name: "min above max", opts: Options{ChunkSize: 10, MinLength: 200, MaxLength: 150}, sum: s},
		{name: "zero max", opts: Options{ChunkSize: 10, MinLength: 0, MaxLength: 0}, sum: s},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAssembler(tt.sum, tt.opts)
			var cfgErr *types.ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestAssemble_EmptyText(t *testing.T) {
	s := &fakeSummarizer{respond: func(string) (string, error) { return "unused", nil }}
	a, err := NewAssembler(s, DefaultOptions())
	require.NoError(t, err)

	summary, err := a.Assemble(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, summary.Bullets)
	assert.Empty(t, s.calls)
}

func TestAssemble_PreservesChunkOrder(t *testing.T) {
	// Earlier chunks finish last so completion order differs from document order
	s := &fakeSummarizer{respond: func(chunk string) (string, error) {
		delay := map[string]time.Duration{"aaaa": 30, "bbbb": 15, "cc": 0}[chunk]
		time.Sleep(delay * time.Millisecond)
		return fmt.Sprintf("Summary of %s. It matters.", chunk), nil
	}}
	opts := DefaultOptions()
	opts.ChunkSize = 4

	var progress atomic.Int32
	opts.OnChunk = func(_, total int) {
		assert.Equal(t, 3, total)
		progress.Add(1)
	}

	a, err := NewAssembler(s, opts)
	require.NoError(t, err)

	summary, err := a.Assemble(context.Background(), "aaaabbbbcc")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"• Summary of aaaa.",
		"• It matters.",
		"• Summary of bbbb.",
		"• It matters.",
		"• Summary of cc.",
		"• It matters.",
	}, summary.Bullets)
	assert.Equal(t, int32(3), progress.Load())

	for _, b := range s.bounds {
		assert.Equal(t, [2]int{DefaultMinLength, DefaultMaxLength}, b)
	}
}

func TestAssemble_ChunkFailureFailsWhole(t *testing.T) {
	s := &fakeSummarizer{respond: func(chunk string) (string, error) {
		if chunk == "bbbb" {
			return "", errors.New("model unavailable")
		}
		return "Fine.", nil
	}}
	opts := DefaultOptions()
	opts.ChunkSize = 4
	a, err := NewAssembler(s, opts)
	require.NoError(t, err)

	summary, err := a.Assemble(context.Background(), "aaaabbbbcccc")
	assert.Empty(t, summary.Bullets)

	var ce *types.CollaboratorError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, types.StageSummarization, ce.Stage)
	assert.Contains(t, ce.Message, "chunk 2 of 3")
}

func TestBuildBullets(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "two statements",
			input:    "The lease runs two years. Rent is due monthly. ",
			expected: []string{"• The lease runs two years.", "• Rent is due monthly."},
		},
		{
			name:     "missing final period",
			input:    "Payment is net 30",
			expected: []string{"• Payment is net 30."},
		},
		{
			name:     "only separators",
			input:    ". .  . ",
			expected: []string{},
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bullets := BuildBullets(tt.input)
			assert.Equal(t, tt.expected, bullets)
			assert.LessOrEqual(t, len(bullets), len(strings.Split(tt.input, ". ")))
			for _, b := range bullets {
				statement := strings.TrimPrefix(b, types.BulletMarker)
				assert.Equal(t, strings.TrimSpace(statement), statement)
				assert.True(t, strings.HasSuffix(statement, "."))
			}
		})
	}
}

func TestConcatenate(t *testing.T) {
	assert.Equal(t, "A. B. ", Concatenate([]string{"A.", "B."}))
	assert.Equal(t, "", Concatenate(nil))
}
