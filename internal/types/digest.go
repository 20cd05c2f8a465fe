// Package types defines the data structures shared by the analysis pipeline,
// its collaborators and the HTTP layer.
package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BulletMarker prefixes every summary bullet
const BulletMarker = "• "

// ClauseType is the fixed type tag carried by every clause record
const ClauseType = "Clause"

// Severity classifies a flagged risk sentence
type Severity string

const (
	// SeverityMajor marks contractual or financial exposure
	SeverityMajor Severity = "major"
	// SeverityMinor marks descriptive obligations
	SeverityMinor Severity = "minor"
)

// Valid reports whether s is a known severity
func (s Severity) Valid() bool {
	return s == SeverityMajor || s == SeverityMinor
}

// Keyword is a candidate term returned by the keyword-extraction collaborator
type Keyword struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Clause is a document sentence flagged as contractually salient
type Clause struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Risk is a document sentence flagged by the risk vocabulary
type Risk struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// Summary is the ordered bulleted digest of a document
type Summary struct {
	Bullets []string `json:"bullets"`
}

// Statements returns the bullets without their marker
func (s Summary) Statements() []string {
	statements := make([]string, 0, len(s.Bullets))
	for _, b := range s.Bullets {
		statements = append(statements, strings.TrimPrefix(b, BulletMarker))
	}
	return statements
}

// Text joins the bullets into a newline-separated block
func (s Summary) Text() string {
	return strings.Join(s.Bullets, "\n")
}

// Answer is the shaped result of a question-answering call.
// Confidence is a percentage in [0,100] rounded to two decimals.
type Answer struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// Digest is the full result of analyzing one document.
// Context carries the full document text so callers can ask follow-up questions.
type Digest struct {
	ID        uuid.UUID `json:"id"`
	Summary   Summary   `json:"summary"`
	Clauses   []Clause  `json:"clauses"`
	Risks     []Risk    `json:"risks"`
	Keywords  []Keyword `json:"keywords"`
	Context   string    `json:"context"`
	CreatedAt time.Time `json:"created_at"`
}
