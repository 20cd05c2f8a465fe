package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/legal-digest/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &types.ValidationError{Field: "text", Message: "empty"}, want: http.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("ingest: %w", &types.ValidationError{Message: "bad"}), want: http.StatusBadRequest},
		{name: "configuration", err: &types.ConfigurationError{Field: "clause_cap"}, want: http.StatusInternalServerError},
		{name: "collaborator timeout", err: &types.CollaboratorError{Stage: types.StageSummarization, TimedOut: true}, want: http.StatusGatewayTimeout},
		{name: "collaborator failure", err: &types.CollaboratorError{Stage: types.StageKeywordExtraction, Cause: errors.New("503")}, want: http.StatusBadGateway},
		{name: "other", err: context.Canceled, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := newErrorResponse(&types.CollaboratorError{Stage: types.StageQuestionAnswering, Message: "model unavailable"})
	assert.Equal(t, "question-answering", resp.Stage)
	assert.Contains(t, resp.Error, "model unavailable")

	resp = newErrorResponse(&types.ValidationError{Field: "question", Message: "missing question"})
	assert.Empty(t, resp.Stage)
	assert.Equal(t, "validation error in question: missing question", resp.Error)
}
