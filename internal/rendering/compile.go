package rendering

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CompilationTimeout is the maximum time to wait for pdflatex
const CompilationTimeout = 30 * time.Second

// ErrPDFLaTeXNotFound is returned when pdflatex is not on PATH
var ErrPDFLaTeXNotFound = errors.New("pdflatex not found in PATH; install a LaTeX distribution (e.g., TeX Live, MiKTeX)")

// CompileLaTeX compiles a LaTeX document in a scratch directory and returns
// the PDF bytes. The directory is removed afterwards.
func CompileLaTeX(ctx context.Context, tex string) ([]byte, error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return nil, &CompilationError{Message: ErrPDFLaTeXNotFound.Error(), Cause: ErrPDFLaTeXNotFound}
	}

	workDir, err := os.MkdirTemp("", "latex-compile-*")
	if err != nil {
		return nil, &CompilationError{Message: "failed to create temporary working directory", Cause: err}
	}
	defer os.RemoveAll(workDir)

	texPath := filepath.Join(workDir, "report.tex")
	if err := os.WriteFile(texPath, []byte(tex), 0644); err != nil {
		return nil, &CompilationError{Message: "failed to write LaTeX source", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	// nonstopmode keeps pdflatex from waiting on stdin after an error
	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-output-directory", workDir, texPath)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	logOutput := stdout.String() + stderr.String()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, &CompilationError{
			Message:   "LaTeX compilation timed out after " + CompilationTimeout.String(),
			LogOutput: logOutput,
			Cause:     ctx.Err(),
		}
	}

	pdf, err := os.ReadFile(filepath.Join(workDir, "report.pdf"))
	if err != nil {
		return nil, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     errors.Join(runErr, err),
		}
	}

	// pdflatex exits non-zero on recoverable errors but still writes a usable PDF
	if runErr != nil {
		return pdf, &CompilationError{
			Message:   "LaTeX compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return pdf, nil
}
