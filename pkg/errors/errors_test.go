package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsMapToStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantType   ErrorType
		wantStatus int
	}{
		{"bad request", NewBadRequestError("missing field"), ErrorTypeBadRequest, http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("bad token"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("not the owner"), ErrorTypeForbidden, http.StatusForbidden},
		{"not found", NewNotFoundError("no such video"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("user exists"), ErrorTypeConflict, http.StatusConflict},
		{"internal", NewInternalError("db down", fmt.Errorf("boom")), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
		})
	}
}

func TestErrorIncludesWrappedCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewInternalError("failed to save", cause)

	assert.Contains(t, err.Error(), "failed to save")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, cause, err.Unwrap())
}

func TestFrom(t *testing.T) {
	t.Run("passes through AppError", func(t *testing.T) {
		orig := NewNotFoundError("gone")
		assert.Same(t, orig, From(orig))
	})

	t.Run("passes through wrapped AppError", func(t *testing.T) {
		orig := NewForbiddenError("nope")
		wrapped := fmt.Errorf("handler: %w", orig)
		assert.Same(t, orig, From(wrapped))
	})

	t.Run("coerces unknown errors to internal", func(t *testing.T) {
		got := From(fmt.Errorf("surprise"))
		assert.Equal(t, ErrorTypeInternal, got.Type)
		assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
	})
}
