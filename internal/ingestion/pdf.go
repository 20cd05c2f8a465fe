package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// pdfTool is the poppler text extractor
const pdfTool = "pdftotext"

// ErrPDFToolNotFound is returned when pdftotext is not on PATH
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner executes an external command and returns its stdout
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// CheckAvailable reports whether pdftotext can be found
func CheckAvailable() error {
	if _, err := exec.LookPath(pdfTool); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions describes how to install pdftotext
func InstallInstructions() string {
	return "PDF extraction requires pdftotext from poppler:\n" +
		"  macOS:  brew install poppler\n" +
		"  Debian: apt install poppler-utils"
}

// PDFExtractor extracts text from PDF bytes with pdftotext -layout
type PDFExtractor struct {
	runner CommandRunner
}

// NewPDFExtractor creates an extractor that shells out to pdftotext
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{runner: execRunner{}}
}

// NewPDFExtractorWithRunner creates an extractor with an injected runner
func NewPDFExtractorWithRunner(runner CommandRunner) *PDFExtractor {
	return &PDFExtractor{runner: runner}
}

// Extract writes data to a temporary file and returns the extracted text
func (p *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "legal-digest-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	out, err := p.runner.Run(ctx, pdfTool, "-layout", "-enc", "UTF-8", tmp.Name(), "-")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrPDFToolNotFound
		}
		return "", fmt.Errorf("pdf extraction failed: %w", err)
	}
	return CleanText(string(out)), nil
}
