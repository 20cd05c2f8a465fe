package rendering

import "fmt"

// TemplateError represents an error parsing or executing a report template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// CompilationError represents a pdflatex failure. LogOutput holds the
// compiler transcript when one was produced.
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
