package extraction

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/legal-digest/internal/types"
)

const (
	// DefaultClauseCap limits the number of clause records
	DefaultClauseCap = 10
	// DefaultClauseMinLength is the trimmed length a sentence must exceed
	DefaultClauseMinLength = 20
)

// ClauseOptions controls clause extraction limits
type ClauseOptions struct {
	Cap       int
	MinLength int
}

// DefaultClauseOptions returns the standard clause limits
func DefaultClauseOptions() ClauseOptions {
	return ClauseOptions{Cap: DefaultClauseCap, MinLength: DefaultClauseMinLength}
}

// ExtractClauses returns sentences that contain a keyword, in document order.
// A sentence qualifies when its trimmed length exceeds opts.MinLength and it
// contains a keyword term case-insensitively. Sentences are deduplicated by
// trimmed text and the scan stops after opts.Cap records.
func ExtractClauses(sentences []string, keywords []types.Keyword, opts ClauseOptions) []types.Clause {
	clauses := make([]types.Clause, 0, min(opts.Cap, len(sentences)))
	if opts.Cap <= 0 || len(keywords) == 0 {
		return clauses
	}

	seen := newOrderedSet(opts.Cap)

	for _, sentence := range sentences {
		if seen.len() >= opts.Cap {
			break
		}

		trimmed := strings.TrimSpace(sentence)
		if utf8.RuneCountInString(trimmed) <= opts.MinLength || seen.contains(trimmed) {
			continue
		}

		lower := strings.ToLower(trimmed)
		for _, kw := range keywords {
			if kw.Term == "" || !strings.Contains(lower, strings.ToLower(kw.Term)) {
				continue
			}
			seen.add(trimmed)
			clauses = append(clauses, types.Clause{Type: types.ClauseType, Text: trimmed})
			break
		}
	}

	return clauses
}
