package ingestion

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner is a test double for CommandRunner
type mockRunner struct {
	output []byte
	err    error

	name  string
	args  []string
	input []byte
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name, m.args = name, args
	// The input file is removed after Run returns
	if len(args) >= 2 {
		m.input, _ = os.ReadFile(args[len(args)-2])
	}
	return m.output, m.err
}

func TestPDFExtractor_Extract(t *testing.T) {
	runner := &mockRunner{output: []byte("  LEASE AGREEMENT  \n\n\n\nThe Tenant   shall pay rent.\f")}
	extractor := NewPDFExtractorWithRunner(runner)

	text, err := extractor.Extract(context.Background(), []byte("%PDF-1.7 fake"))
	require.NoError(t, err)

	assert.Equal(t, "LEASE AGREEMENT\n\nThe Tenant shall pay rent.", text)
	assert.Equal(t, "pdftotext", runner.name)
	assert.Equal(t, "-layout", runner.args[0])
	assert.Equal(t, "-", runner.args[len(runner.args)-1])
	assert.Equal(t, []byte("%PDF-1.7 fake"), runner.input)
}

func TestPDFExtractor_RunnerError(t *testing.T) {
	extractor := NewPDFExtractorWithRunner(&mockRunner{err: errors.New("Syntax Error: Couldn't find trailer dictionary")})

	_, err := extractor.Extract(context.Background(), []byte("not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf extraction failed")
}

func TestPDFExtractor_ToolMissing(t *testing.T) {
	extractor := NewPDFExtractorWithRunner(&mockRunner{err: &exec.Error{Name: "pdftotext", Err: exec.ErrNotFound}})

	_, err := extractor.Extract(context.Background(), []byte("%PDF"))
	assert.ErrorIs(t, err, ErrPDFToolNotFound)
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestPDFExtractor_Integration(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not available, skipping integration test")
	}

	_, err := NewPDFExtractor().Extract(context.Background(), []byte("not a pdf"))
	assert.Error(t, err)
}
