package llm

import "strings"

// CleanJSONBlock strips markdown fences and any conversational text around
// the first JSON object or array in a model response.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}

	var extracted string
	if text[start] == '{' {
		extracted = extractJSONObject(text[start:])
	} else {
		extracted = extractJSONArray(text[start:])
	}
	if extracted == "" {
		return text
	}
	return extracted
}

// extractJSONObject returns the balanced object at the start of text
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the balanced array at the start of text
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

// extractBalanced scans from an opening delimiter to its matching close,
// ignoring delimiters inside string literals. Returns "" if unbalanced.
func extractBalanced(text string, open, closing byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
