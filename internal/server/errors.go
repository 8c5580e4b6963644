// Package server provides the HTTP REST API for the resume assistant.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-assistant/internal/assistant"
	"github.com/jonathan/resume-assistant/internal/rendering"
	"github.com/jonathan/resume-assistant/internal/store"
)

// ErrValidation indicates a malformed request: bad JSON, path or query values.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var reqErr *ErrValidation
	var inputErr *assistant.ValidationError
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &reqErr), errors.As(err, &inputErr), errors.Is(err, rendering.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, assistant.ErrProfileMissing):
		return http.StatusConflict
	case errors.Is(err, store.ErrIndexOutOfRange):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
