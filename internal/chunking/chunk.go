// Package chunking splits document text into bounded-size segments for
// single-pass summarization.
package chunking

import (
	"unicode/utf8"

	"github.com/jonathan/legal-digest/internal/types"
)

// DefaultChunkSize is the default maximum number of characters per chunk
const DefaultChunkSize = 1000

// Split slices text into consecutive, non-overlapping chunks of at most maxLen
// characters. Lengths count Unicode code points, so a chunk never ends inside a
// UTF-8 sequence. Concatenating the result yields text exactly.
func Split(text string, maxLen int) ([]string, error) {
	if maxLen <= 0 {
		return nil, &types.ConfigurationError{
			Field:   "chunk_size",
			Message: "must be positive",
		}
	}
	if text == "" {
		return nil, nil
	}

	estimated := utf8.RuneCountInString(text)/maxLen + 1
	chunks := make([]string, 0, estimated)

	start, count := 0, 0
	for i := range text {
		if count == maxLen {
			chunks = append(chunks, text[start:i])
			start, count = i, 0
		}
		count++
	}
	chunks = append(chunks, text[start:])

	return chunks, nil
}
