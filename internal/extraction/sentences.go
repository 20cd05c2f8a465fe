// Package extraction derives clause and risk records from document sentences.
package extraction

import (
	"unicode"
	"unicode/utf8"
)

// SplitSentences splits text after every '.', '!' or '?' that is immediately
// followed by whitespace. The split is zero-width: terminal punctuation stays
// with the preceding sentence and the whitespace run leads the next one.
// Sentences are returned untrimmed in document order.
func SplitSentences(text string) []string {
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next := i + utf8.RuneLen(r)
		if next >= len(text) {
			break
		}
		following, _ := utf8.DecodeRuneInString(text[next:])
		if unicode.IsSpace(following) {
			sentences = append(sentences, text[start:next])
			start = next
		}
	}
	sentences = append(sentences, text[start:])

	return sentences
}
