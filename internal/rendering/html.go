package rendering

import (
	"bytes"
	_ "embed"
	"html/template"
)

//go:embed templates/report.html
var htmlTemplate string

// RenderHTML renders the report as a standalone HTML page
func RenderHTML(r Report) (string, error) {
	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", &TemplateError{Message: "failed to parse HTML template", Cause: err}
	}

	// html/template escapes on its own, so the LaTeX data is reused unescaped
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newLaTeXData(r)); err != nil {
		return "", &TemplateError{Message: "failed to execute HTML template", Cause: err}
	}
	return buf.String(), nil
}
