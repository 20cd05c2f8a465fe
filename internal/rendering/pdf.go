package rendering

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/legal-digest/internal/types"
)

// Engine selects how PDFs are produced
type Engine string

const (
	// EngineLaTeX renders LaTeX and compiles it with pdflatex
	EngineLaTeX Engine = "latex"
	// EngineBrowser renders HTML and prints it with headless Chrome
	EngineBrowser Engine = "browser"
)

// PDFOptions configures RenderPDF
type PDFOptions struct {
	Engine  Engine
	Timeout time.Duration
}

// RenderPDF renders the report to PDF bytes with the selected engine.
// An unknown engine is a configuration problem, not a rendering failure.
func RenderPDF(ctx context.Context, r Report, opts PDFOptions) ([]byte, error) {
	switch opts.Engine {
	case EngineLaTeX, "":
		tex, err := RenderLaTeX(r)
		if err != nil {
			return nil, err
		}
		pdf, err := CompileLaTeX(ctx, tex)
		if err != nil {
			var compErr *CompilationError
			// a PDF that compiled with warnings is still served
			if errors.As(err, &compErr) && len(pdf) > 0 {
				log.Printf("[REPORT] pdflatex reported errors, serving partial PDF: %v", err)
				return pdf, nil
			}
			return nil, err
		}
		return pdf, nil
	case EngineBrowser:
		html, err := RenderHTML(r)
		if err != nil {
			return nil, err
		}
		return PrintPDF(ctx, html, opts.Timeout)
	default:
		return nil, &types.ConfigurationError{
			Field:   "report.engine",
			Message: fmt.Sprintf("unknown PDF engine %q (want latex or browser)", opts.Engine),
		}
	}
}

// Format is a downloadable report format
type Format string

const (
	FormatText  Format = "txt"
	FormatLaTeX Format = "tex"
	FormatHTML  Format = "html"
	FormatPDF   Format = "pdf"
)

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatLaTeX:
		return "application/x-tex; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Render produces the report bytes for any supported format
func Render(ctx context.Context, r Report, format Format, opts PDFOptions) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(RenderText(r)), nil
	case FormatLaTeX:
		tex, err := RenderLaTeX(r)
		return []byte(tex), err
	case FormatHTML:
		html, err := RenderHTML(r)
		return []byte(html), err
	case FormatPDF:
		return RenderPDF(ctx, r, opts)
	}
	return nil, &types.ValidationError{
		Field:   "format",
		Message: fmt.Sprintf("unsupported report format %q (want txt, tex, html or pdf)", format),
	}
}
