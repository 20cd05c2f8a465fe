// Package ingestion turns uploaded documents (plain text, PDF, HTML) into the
// plain text consumed by the analysis pipeline.
package ingestion

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/legal-digest/internal/types"
)

var (
	inlineSpace   = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	excessBlank   = regexp.MustCompile(`\n\n\n+`)
	utf8BOM       = []byte{0xEF, 0xBB, 0xBF}
	formFeedPages = strings.NewReplacer("\f", "\n\n")
)

// CleanText normalizes extracted text while keeping paragraph structure:
// line endings become LF, runs of spaces collapse to one, trailing
// whitespace is dropped and at most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = formFeedPages.Replace(content)

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inline whitespace. Leading indentation is dropped
// because pdftotext layout mode pads columns with spaces.
func cleanLine(line string) string {
	return strings.TrimSpace(inlineSpace.ReplaceAllString(line, " "))
}

// DecodeText validates UTF-8 input and strips a byte order mark
func DecodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", &types.ValidationError{Field: "file", Message: "text is not valid UTF-8"}
	}
	return string(data), nil
}
