package rendering

import (
	"fmt"
	"strings"
)

// RenderText renders the plain-text download: a heading, the summary
// bullets, then one "- text (Severity: s)" line per risk. A clause section
// is appended only when clauses are present.
func RenderText(r Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Summary for %s\n\n", r.DisplayTitle())

	sb.WriteString("=== Summary ===\n")
	sb.WriteString(r.Summary.Text())
	sb.WriteString("\n\n")

	sb.WriteString("=== Risks ===\n")
	sb.WriteString(RiskLines(r))

	if len(r.Clauses) > 0 {
		sb.WriteString("\n\n=== Clauses ===\n")
		for i, c := range r.Clauses {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "- %s", c.Text)
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// RiskLines renders risks one per line as "- text (Severity: s)"
func RiskLines(r Report) string {
	lines := make([]string, 0, len(r.Risks))
	for _, risk := range r.Risks {
		lines = append(lines, fmt.Sprintf("- %s (Severity: %s)", risk.Text, risk.Severity))
	}
	return strings.Join(lines, "\n")
}
