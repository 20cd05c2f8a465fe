package rendering

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/jonathan/legal-digest/internal/types"
)

//go:embed templates/report.tex
var latexTemplate string

// DateLayout formats the generation timestamp in rendered reports
const DateLayout = "2 January 2006 15:04 MST"

type latexRisk struct {
	Text     string
	Severity string
	Major    bool
}

type latexData struct {
	Title       string
	GeneratedAt string
	Statements  []string
	Risks       []latexRisk
	Clauses     []string
}

// RenderLaTeX renders the report as a standalone LaTeX document.
// All document text is escaped; the template uses [[ ]] delimiters so
// LaTeX braces need no special handling.
func RenderLaTeX(r Report) (string, error) {
	tmpl, err := parseLaTeXTemplate()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newLaTeXData(r)); err != nil {
		return "", &TemplateError{Message: "failed to execute LaTeX template", Cause: err}
	}
	return buf.String(), nil
}

func parseLaTeXTemplate() (*template.Template, error) {
	tmpl, err := template.New("report").
		Delims("[[", "]]").
		Funcs(template.FuncMap{"escape": EscapeLaTeX}).
		Parse(latexTemplate)
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse LaTeX template", Cause: err}
	}
	return tmpl, nil
}

func newLaTeXData(r Report) latexData {
	data := latexData{
		Title:       r.DisplayTitle(),
		GeneratedAt: r.generatedAt().Format(DateLayout),
		Statements:  r.Summary.Statements(),
	}
	for _, risk := range r.Risks {
		data.Risks = append(data.Risks, latexRisk{
			Text:     risk.Text,
			Severity: string(risk.Severity),
			Major:    risk.Severity == types.SeverityMajor,
		})
	}
	for _, c := range r.Clauses {
		data.Clauses = append(data.Clauses, c.Text)
	}
	return data
}
