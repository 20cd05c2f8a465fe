package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested document
type Metadata struct {
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type"`
	Timestamp   string `json:"timestamp"`  // RFC3339 format
	Hash        string `json:"hash"`       // SHA256 hex digest of the raw upload
	Characters  int    `json:"characters"` // extracted text length in runes
}

// NewMetadata creates Metadata stamped with the current time
func NewMetadata(filename, contentType string, raw []byte, text string) *Metadata {
	return &Metadata{
		Filename:    filename,
		ContentType: contentType,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Hash:        computeHash(raw),
		Characters:  utf8.RuneCountInString(text),
	}
}

// computeHash computes the SHA256 hex digest of data
func computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
