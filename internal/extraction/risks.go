package extraction

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/legal-digest/internal/types"
)

const (
	// DefaultRiskCap limits the number of risk records
	DefaultRiskCap = 10
	// DefaultRiskMinLength is the trimmed length a sentence must exceed
	DefaultRiskMinLength = 10
)

// RiskTerm is one entry of the risk vocabulary
type RiskTerm struct {
	Term     string         `json:"term" mapstructure:"term"`
	Severity types.Severity `json:"severity" mapstructure:"severity"`
}

// RiskVocabulary is an ordered list of risk terms. Order is the tie-break when
// a sentence contains several terms.
type RiskVocabulary []RiskTerm

// DefaultRiskVocabulary returns the built-in vocabulary: financial and
// contractual exposure first, descriptive obligations last.
func DefaultRiskVocabulary() RiskVocabulary {
	return RiskVocabulary{
		{Term: "penalty", Severity: types.SeverityMajor},
		{Term: "termination", Severity: types.SeverityMajor},
		{Term: "auto-renewal", Severity: types.SeverityMajor},
		{Term: "breach", Severity: types.SeverityMajor},
		{Term: "liable", Severity: types.SeverityMajor},
		{Term: "indemnify", Severity: types.SeverityMajor},
		{Term: "damages", Severity: types.SeverityMinor},
		{Term: "loss", Severity: types.SeverityMinor},
		{Term: "obligation", Severity: types.SeverityMinor},
	}
}

// Validate checks every term is non-empty and has a known severity
func (v RiskVocabulary) Validate() error {
	if len(v) == 0 {
		return &types.ConfigurationError{Field: "risk_vocabulary", Message: "must not be empty"}
	}
	for i, rt := range v {
		if strings.TrimSpace(rt.Term) == "" {
			return &types.ConfigurationError{
				Field:   fmt.Sprintf("risk_vocabulary[%d].term", i),
				Message: "must not be empty",
			}
		}
		if !rt.Severity.Valid() {
			return &types.ConfigurationError{
				Field:   fmt.Sprintf("risk_vocabulary[%d].severity", i),
				Message: fmt.Sprintf("unknown severity %q", rt.Severity),
			}
		}
	}
	return nil
}

// Match returns the first vocabulary term contained in text, case-insensitively
func (v RiskVocabulary) Match(text string) (RiskTerm, bool) {
	lower := strings.ToLower(text)
	for _, rt := range v {
		if strings.Contains(lower, strings.ToLower(rt.Term)) {
			return rt, true
		}
	}
	return RiskTerm{}, false
}

// RiskOptions controls risk extraction limits
type RiskOptions struct {
	Cap       int
	MinLength int
}

// DefaultRiskOptions returns the standard risk limits
func DefaultRiskOptions() RiskOptions {
	return RiskOptions{Cap: DefaultRiskCap, MinLength: DefaultRiskMinLength}
}

// ExtractRisks flags sentences containing a vocabulary term, in document order.
// The first matching term decides severity. Sentences are deduplicated by
// trimmed text and at most opts.Cap records are returned.
func ExtractRisks(sentences []string, vocab RiskVocabulary, opts RiskOptions) []types.Risk {
	risks := make([]types.Risk, 0, min(opts.Cap, len(sentences)))
	if opts.Cap <= 0 {
		return risks
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

		term, ok := vocab.Match(trimmed)
		if !ok {
			continue
		}
		seen.add(trimmed)
		risks = append(risks, types.Risk{Text: trimmed, Severity: term.Severity})
	}

	return risks
}
