// Package rendering turns a digest into downloadable reports: plain text,
// LaTeX (compiled with pdflatex) and HTML (printed to PDF by headless Chrome).
package rendering

import (
	"strings"
	"time"

	"github.com/jonathan/legal-digest/internal/types"
)

// DefaultTitle is used when a report has no document name
const DefaultTitle = "Legal Document"

// Report is the content shared by every output format
type Report struct {
	Title       string
	Summary     types.Summary
	Risks       []types.Risk
	Clauses     []types.Clause
	GeneratedAt time.Time
}

// NewReport builds a report from a digest
func NewReport(title string, digest *types.Digest) Report {
	return Report{
		Title:       title,
		Summary:     digest.Summary,
		Risks:       digest.Risks,
		Clauses:     digest.Clauses,
		GeneratedAt: digest.CreatedAt,
	}
}

// DisplayTitle returns the title or DefaultTitle when blank
func (r Report) DisplayTitle() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return DefaultTitle
}

// Filename returns the download name for the given extension, e.g. "Lease-Summary.pdf"
func (r Report) Filename(ext string) string {
	name := strings.Map(func(c rune) rune {
		switch c {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return c
	}, r.DisplayTitle())
	return name + "-Summary." + strings.TrimPrefix(ext, ".")
}

func (r Report) generatedAt() time.Time {
	if r.GeneratedAt.IsZero() {
		return time.Now().UTC()
	}
	return r.GeneratedAt
}
