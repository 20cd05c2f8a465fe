package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/legal-digest/internal/types"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *types.ValidationError
	var configErr *types.ConfigurationError
	var collabErr *types.CollaboratorError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &configErr):
		return http.StatusInternalServerError
	case errors.As(err, &collabErr):
		if collabErr.TimedOut {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// newErrorResponse builds the error body, naming the failed stage for collaborator errors
func newErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	var collabErr *types.CollaboratorError
	if errors.As(err, &collabErr) {
		resp.Stage = string(collabErr.Stage)
	}
	return resp
}
