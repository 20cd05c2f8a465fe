package llm

import (
	"testing"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"answer\": \"$500\"}\n```",
			expected: `{"answer": "$500"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"answer\": \"$500\"}\n```",
			expected: `{"answer": "$500"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"answer\": \"$500\"}\n```",
			expected: `{"answer": "$500"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"answer": "$500"}`,
			expected: `{"answer": "$500"}`,
		},
		{
			name:     "no JSON at all",
			input:    "I cannot answer that.",
			expected: "I cannot answer that.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_PreambleText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before JSON object",
			input:    "As requested, here is the JSON:\n{\"keywords\": []}",
			expected: `{"keywords": []}`,
		},
		{
			name:     "preamble before JSON array",
			input:    "Here are the terms:\n[\"rent\", \"deposit\"]",
			expected: `["rent", "deposit"]`,
		},
		{
			name:     "JSON with trailing text",
			input:    "{\"score\": 0.5}\n\nLet me know if you need anything else!",
			expected: `{"score": 0.5}`,
		},
		{
			name:     "JSON with escaped quotes",
			input:    "Result: {\"answer\": \"the \\\"Premises\\\"\"}",
			expected: `{"answer": "the \"Premises\""}`,
		},
		{
			name:     "nested objects",
			input:    "Output:\n{\"keywords\": [{\"term\": \"lease\", \"score\": 0.9}]}",
			expected: `{"keywords": [{"term": "lease", "score": 0.9}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "object with trailing text",
			input:    `{"key": "value"} and some more text`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "string with braces inside",
			input:    `{"template": "Section {4}"}`,
			expected: `{"template": "Section {4}"}`,
		},
		{
			name:     "unbalanced",
			input:    `{"key": "value"`,
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "not starting with brace",
			input:    "not json",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSONObject(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSONObject() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "array of objects",
			input:    `[{"id": 1}, {"id": 2}]`,
			expected: `[{"id": 1}, {"id": 2}]`,
		},
		{
			name:     "array with trailing text",
			input:    `[1, 2, 3] extra stuff`,
			expected: `[1, 2, 3]`,
		},
		{
			name:     "not starting with bracket",
			input:    "not array",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSONArray(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSONArray() = %q, want %q", result, tt.expected)
			}
		})
	}
}
