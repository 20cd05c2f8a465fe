package types

import (
	"errors"
	"fmt"
)

// Stage names the collaborator-backed step of the pipeline that failed
type Stage string

const (
	// StageSummarization is the per-chunk summarization step
	StageSummarization Stage = "summarization"
	// StageKeywordExtraction is the whole-document keyword step
	StageKeywordExtraction Stage = "keyword-extraction"
	// StageQuestionAnswering is the QA step
	StageQuestionAnswering Stage = "question-answering"
)

// ValidationError represents missing or malformed caller input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ConfigurationError represents an invalid cap, threshold or vocabulary value
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// CollaboratorError represents a failed or timed-out model invocation
type CollaboratorError struct {
	Stage    Stage
	Message  string
	TimedOut bool
	Cause    error
}

func (e *CollaboratorError) Error() string {
	msg := e.Message
	if e.TimedOut {
		msg += " (timed out)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Stage, msg, e.Cause)
	}
	return fmt.Sprintf("%s failed: %s", e.Stage, msg)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Cause
}

// WrapCollaborator returns err unchanged when it already is a CollaboratorError,
// otherwise wraps it for the given stage.
func WrapCollaborator(stage Stage, message string, err error) error {
	if err == nil {
		return nil
	}
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return err
	}
	return &CollaboratorError{Stage: stage, Message: message, Cause: err}
}

// StageOf returns the failing stage recorded in err, or "" when none
func StageOf(err error) Stage {
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return ce.Stage
	}
	return ""
}
