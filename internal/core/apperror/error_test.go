package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactories(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"validation", NewValidation("bad input"), CodeValidation, http.StatusBadRequest},
		{"invalid range", NewInvalidRange("missing bound"), CodeInvalidRange, http.StatusBadRequest},
		{"not found", NewNotFound("product", "42"), CodeNotFound, http.StatusNotFound},
		{"referential integrity", NewReferentialIntegrity("referenced"), CodeReferentialIntegrity, http.StatusUnprocessableEntity},
		{"concurrent modification", NewConcurrentModification("product", "42"), CodeConcurrentModification, http.StatusConflict},
		{"unauthorized", NewUnauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{"duplicate", NewDuplicate("product", "code", "X"), CodeDuplicate, http.StatusConflict},
		{"internal", NewInternal(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
			assert.Equal(t, tt.wantStatus, GetHTTPStatus(tt.err))
		})
	}
}

func TestWithDetailAndCause(t *testing.T) {
	cause := errors.New("row missing")
	err := NewValidation("bad input").
		WithDetail("field", "quantity").
		WithCause(cause)

	assert.Equal(t, "quantity", err.Details["field"])
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
}

func TestAsAppError_Wrapped(t *testing.T) {
	inner := NewNotFound("category", "abc")
	wrapped := fmt.Errorf("load category: %w", inner)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsInvalidRange(NewInvalidRange("x")))
	assert.True(t, IsReferentialIntegrity(NewReferentialIntegrity("x")))
	assert.False(t, IsInvalidRange(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}
