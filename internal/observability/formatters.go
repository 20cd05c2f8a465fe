// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/legal-digest/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs where the analyzed text came from.
func (p *Printer) PrintDocument(filename, contentType string, characters int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:        %s\n", filename))
	sb.WriteString(fmt.Sprintf("Type:        %s\n", contentType))
	sb.WriteString(fmt.Sprintf("Characters:  %d", characters))
	p.printBox("DOCUMENT", sb.String())
}

// PrintSummary outputs the summary bullets.
func (p *Printer) PrintSummary(summary types.Summary) {
	if len(summary.Bullets) == 0 {
		p.printBox("SUMMARY", "(no summary produced)")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d bullets:\n\n", len(summary.Bullets)))
	for i, b := range summary.Bullets {
		sb.WriteString(truncate(b, 54))
		if i < len(summary.Bullets)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SUMMARY", sb.String())
}

// PrintKeywords outputs the top keywords with their scores.
func (p *Printer) PrintKeywords(keywords []types.Keyword) {
	if len(keywords) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(keywords), maxItemsToShow)
	for i := 0; i < count; i++ {
		kw := keywords[i]
		sb.WriteString(fmt.Sprintf("#%d  %-36s %.2f", i+1, truncate(kw.Term, 36), kw.Score))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(keywords) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(keywords)-maxItemsToShow))
	}

	p.printBox("KEYWORDS", sb.String())
}

// PrintClauses outputs the flagged clauses.
func (p *Printer) PrintClauses(clauses []types.Clause) {
	if len(clauses) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d clauses:\n\n", len(clauses)))

	count := min(len(clauses), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s", truncate(clauses[i].Text, 50)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(clauses) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more clauses", len(clauses)-maxItemsToShow))
	}

	p.printBox("KEY CLAUSES", sb.String())
}

// PrintRisks outputs the flagged risks with severity markers.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRisks(risks []types.Risk) {
	if len(risks) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO RISKS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	major := 0
	for _, r := range risks {
		if r.Severity == types.SeverityMajor {
			major++
		}
	}
	sb.WriteString(fmt.Sprintf("Found %d risks (%d major):\n\n", len(risks), major))

	for i, r := range risks {
		marker := "·"
		if r.Severity == types.SeverityMajor {
			marker = "⚠"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, r.Severity))
		sb.WriteString(fmt.Sprintf("  %s", truncate(r.Text, 52)))
		if i < len(risks)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("RISKS", sb.String())
}

// PrintDigest outputs every section of a digest.
func (p *Printer) PrintDigest(digest *types.Digest) {
	if digest == nil {
		return
	}
	p.PrintSummary(digest.Summary)
	p.PrintKeywords(digest.Keywords)
	p.PrintClauses(digest.Clauses)
	p.PrintRisks(digest.Risks)
}

// PrintAnswer outputs a QA answer and its confidence.
func (p *Printer) PrintAnswer(question string, answer types.Answer) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Q: %s\n", question))
	sb.WriteString(fmt.Sprintf("A: %s\n", answer.Answer))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f%%", answer.Confidence))
	p.printBox("ANSWER", sb.String())
}
