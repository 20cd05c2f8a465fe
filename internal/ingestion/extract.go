package ingestion

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/legal-digest/internal/types"
)

// Kind is a supported document format
type Kind string

// Supported document kinds
const (
	KindText Kind = "text"
	KindPDF  Kind = "pdf"
	KindHTML Kind = "html"
)

// Document is extracted text plus its metadata
type Document struct {
	Text     string    `json:"text"`
	Metadata *Metadata `json:"metadata"`
}

// Extractor dispatches uploads to the matching text extractor
type Extractor struct {
	pdf *PDFExtractor
}

// NewExtractor creates an Extractor using pdftotext for PDFs
func NewExtractor() *Extractor {
	return &Extractor{pdf: NewPDFExtractor()}
}

// NewExtractorWithPDF creates an Extractor with a custom PDF extractor
func NewExtractorWithPDF(pdf *PDFExtractor) *Extractor {
	return &Extractor{pdf: pdf}
}

// DetectKind resolves the document kind from the content type, falling back
// to the file extension when the type is missing or generic.
func DetectKind(filename, contentType string) (Kind, bool) {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "text/plain":
			return KindText, true
		case "application/pdf":
			return KindPDF, true
		case "text/html", "application/xhtml+xml":
			return KindHTML, true
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text":
		return KindText, true
	case ".pdf":
		return KindPDF, true
	case ".html", ".htm", ".xhtml":
		return KindHTML, true
	}
	return "", false
}

// Extract returns the cleaned text of data. Unsupported formats and
// documents with no extractable text fail with a ValidationError.
func (e *Extractor) Extract(ctx context.Context, filename, contentType string, data []byte) (*Document, error) {
	kind, ok := DetectKind(filename, contentType)
	if !ok {
		return nil, &types.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("unsupported document type %q (%s)", contentType, filepath.Ext(filename)),
		}
	}

	var text string
	var err error
	switch kind {
	case KindPDF:
		text, err = e.pdf.Extract(ctx, data)
	case KindHTML:
		text, err = ExtractHTMLText(string(data))
	default:
		text, err = DecodeText(data)
		text = CleanText(text)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, &types.ValidationError{Field: "file", Message: "no text could be extracted from the document"}
	}

	log.Printf("[INGEST] Extracted %d bytes of %s from %q", len(text), kind, filename)

	return &Document{
		Text:     text,
		Metadata: NewMetadata(filename, contentTypeFor(kind), data, text),
	}, nil
}

// IngestFromFile reads and extracts a document from disk
func (e *Extractor) IngestFromFile(ctx context.Context, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return e.Extract(ctx, filepath.Base(path), "", data)
}

func contentTypeFor(kind Kind) string {
	switch kind {
	case KindPDF:
		return "application/pdf"
	case KindHTML:
		return "text/html"
	default:
		return "text/plain"
	}
}
