package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata("lease.pdf", "application/pdf", []byte("raw bytes"), "Décompte")

	assert.Equal(t, "lease.pdf", meta.Filename)
	assert.Equal(t, 8, meta.Characters)
	assert.Equal(t, computeHash([]byte("raw bytes")), meta.Hash)

	_, err := time.Parse(time.RFC3339, meta.Timestamp)
	assert.NoError(t, err)
}

func TestMetadata_ToJSON(t *testing.T) {
	meta := &Metadata{
		Filename:    "lease.txt",
		ContentType: "text/plain",
		Timestamp:   "2024-01-01T00:00:00Z",
		Hash:        "abcd1234",
		Characters:  42,
	}

	jsonBytes, err := meta.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Equal(t, "lease.txt", decoded["filename"])
	assert.Equal(t, "text/plain", decoded["content_type"])
	assert.Equal(t, float64(42), decoded["characters"])
}

func TestComputeHash(t *testing.T) {
	hash1 := computeHash([]byte("test content"))
	hash2 := computeHash([]byte("test content"))
	hash3 := computeHash([]byte("different content"))

	assert.Equal(t, hash1, hash2)
	assert.NotEqual(t, hash1, hash3)
	assert.Len(t, hash1, 64)
}
