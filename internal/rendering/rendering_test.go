package rendering

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/legal-digest/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() Report {
	return Report{
		Title: "Lease Agreement",
		Summary: types.Summary{Bullets: []string{
			"• The tenant leases the premises for 12 months.",
			"• Rent of $1,500 is due monthly.",
		}},
		Risks: []types.Risk{
			{Text: "Early termination incurs a penalty of 50% of remaining rent.", Severity: types.SeverityMajor},
			{Text: "The tenant has an obligation to keep the premises clean.", Severity: types.SeverityMinor},
		},
		Clauses: []types.Clause{
			{Type: types.ClauseType, Text: "The lease renews automatically unless notice is given."},
		},
		GeneratedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestRenderText(t *testing.T) {
	r := sampleReport()
	r.Clauses = nil

	expected := "Summary for Lease Agreement\n\n" +
		"=== Summary ===\n" +
		"• The tenant leases the premises for 12 months.\n" +
		"• Rent of $1,500 is due monthly.\n\n" +
		"=== Risks ===\n" +
		"- Early termination incurs a penalty of 50% of remaining rent. (Severity: major)\n" +
		"- The tenant has an obligation to keep the premises clean. (Severity: minor)\n"

	assert.Equal(t, expected, RenderText(r))
}

func TestRenderText_WithClausesAndDefaultTitle(t *testing.T) {
	r := sampleReport()
	r.Title = "  "

	out := RenderText(r)
	assert.True(t, strings.HasPrefix(out, "Summary for Legal Document\n"))
	assert.Contains(t, out, "=== Clauses ===\n- The lease renews automatically unless notice is given.\n")
}

func TestRenderText_Empty(t *testing.T) {
	out := RenderText(Report{})
	assert.Equal(t, "Summary for Legal Document\n\n=== Summary ===\n\n\n=== Risks ===\n\n", out)
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "Lease Agreement-Summary.pdf", Report{Title: "Lease Agreement"}.Filename("pdf"))
	assert.Equal(t, "a_b-Summary.txt", Report{Title: "a/b"}.Filename(".txt"))
	assert.Equal(t, "Legal Document-Summary.tex", Report{}.Filename("tex"))
}

func TestNewReport(t *testing.T) {
	created := time.Now().UTC()
	d := &types.Digest{
		Summary:   types.Summary{Bullets: []string{"• One."}},
		Risks:     []types.Risk{{Text: "x", Severity: types.SeverityMinor}},
		CreatedAt: created,
	}
	r := NewReport("Contract", d)
	assert.Equal(t, "Contract", r.Title)
	assert.Equal(t, d.Summary, r.Summary)
	assert.Equal(t, d.Risks, r.Risks)
	assert.Equal(t, created, r.GeneratedAt)
}

func TestRenderLaTeX(t *testing.T) {
	out, err := RenderLaTeX(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, `\documentclass[11pt]{article}`)
	assert.Contains(t, out, "Summary for Lease Agreement")
	assert.Contains(t, out, "Generated 14 March 2025 09:30 UTC")
	assert.Contains(t, out, `\item The tenant leases the premises for 12 months.`)
	assert.Contains(t, out, `\item Rent of \$1,500 is due monthly.`)
	assert.Contains(t, out, `penalty of 50\% of remaining rent.`)
	assert.Contains(t, out, `\textbf{\textcolor{red}{(Severity: major)}}`)
	assert.Contains(t, out, `\textit{(Severity: minor)}`)
	assert.Contains(t, out, `\section*{Key Clauses}`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), `\end{document}`))
	assert.NotContains(t, out, "• ", "bullet markers are not passed to LaTeX")
}

func TestRenderLaTeX_EscapesTitle(t *testing.T) {
	r := sampleReport()
	r.Title = "R&D_Agreement #2"

	out, err := RenderLaTeX(r)
	require.NoError(t, err)
	assert.Contains(t, out, `Summary for R\&D\_Agreement \#2`)
}

func TestRenderLaTeX_EmptySections(t *testing.T) {
	out, err := RenderLaTeX(Report{})
	require.NoError(t, err)

	assert.Contains(t, out, "No summary available.")
	assert.Contains(t, out, "No risks detected.")
	assert.NotContains(t, out, "Key Clauses")
}

func TestRenderHTML(t *testing.T) {
	r := sampleReport()
	r.Risks = append(r.Risks, types.Risk{Text: "<script>alert(1)</script> liability applies", Severity: types.SeverityMajor})

	out, err := RenderHTML(r)
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Summary for Lease Agreement</h1>")
	assert.Contains(t, out, "<li>Rent of $1,500 is due monthly.</li>")
	assert.Contains(t, out, `class="severity severity-major"`)
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>alert(1)</script>")
}

func TestRender_Formats(t *testing.T) {
	ctx := context.Background()
	r := sampleReport()

	txt, err := Render(ctx, r, FormatText, PDFOptions{})
	require.NoError(t, err)
	assert.Equal(t, RenderText(r), string(txt))

	tex, err := Render(ctx, r, FormatLaTeX, PDFOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(tex), `\begin{document}`)

	_, err = Render(ctx, r, Format("docx"), PDFOptions{})
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "format", vErr.Field)
}

func TestFormatContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "text/plain; charset=utf-8", FormatText.ContentType())
	assert.Equal(t, "application/octet-stream", Format("zip").ContentType())
}

func TestRenderPDF_UnknownEngine(t *testing.T) {
	_, err := RenderPDF(context.Background(), sampleReport(), PDFOptions{Engine: "word"})

	var cfgErr *types.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "report.engine", cfgErr.Field)
}

func TestTemplateError(t *testing.T) {
	cause := errors.New("boom")
	err := &TemplateError{Message: "failed", Cause: cause}
	assert.Equal(t, "template error: failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestCompileLaTeX(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not installed")
	}

	tex, err := RenderLaTeX(sampleReport())
	require.NoError(t, err)

	pdf, err := CompileLaTeX(context.Background(), tex)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}

func TestCompileLaTeX_InvalidSource(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not installed")
	}

	_, err := CompileLaTeX(context.Background(), `\documentclass{article}\begin{document}\undefinedmacro`)
	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.NotEmpty(t, compErr.LogOutput)
}
