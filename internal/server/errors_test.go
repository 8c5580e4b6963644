package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-assistant/internal/assistant"
	"github.com/jonathan/resume-assistant/internal/rendering"
	"github.com/jonathan/resume-assistant/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "index", Message: "must be a non-negative integer"}
	assert.Equal(t, "validation error: index - must be a non-negative integer", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"request validation", &ErrValidation{Field: "body", Message: "invalid JSON"}, http.StatusBadRequest},
		{"input validation", &assistant.ValidationError{Field: "email", Message: "is required"}, http.StatusBadRequest},
		{"unsupported format", fmt.Errorf("render: %w", rendering.ErrUnsupportedFormat), http.StatusBadRequest},
		{"missing profile", assistant.ErrProfileMissing, http.StatusConflict},
		{"wrapped missing profile", fmt.Errorf("resume: %w", assistant.ErrProfileMissing), http.StatusConflict},
		{"index out of range", fmt.Errorf("%w: 7", store.ErrIndexOutOfRange), http.StatusNotFound},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
