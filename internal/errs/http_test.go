package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Bad Request", "BAD_REQUEST"},
		{"Not Found", "NOT_FOUND"},
		{"Internal Server Error", "INTERNAL_SERVER_ERROR"},
		{"Conflict", "CONFLICT"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MakeUpperCaseWithUnderscores(tt.input))
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *HTTPError
		status   int
		code     string
		override bool
	}{
		{name: "unauthorized", err: NewUnauthorizedError("sign in", false), status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "forbidden", err: NewForbiddenError("no access", true), status: http.StatusForbidden, code: "FORBIDDEN", override: true},
		{name: "bad request", err: NewBadRequestError("bad", true, nil, nil, nil), status: http.StatusBadRequest, code: "BAD_REQUEST", override: true},
		{name: "not found", err: NewNotFoundError("missing", true, nil), status: http.StatusNotFound, code: "NOT_FOUND", override: true},
		{name: "conflict", err: NewConflictError("taken", true, nil), status: http.StatusConflict, code: "CONFLICT", override: true},
		{name: "internal", err: NewInternalServerError(), status: http.StatusInternalServerError, code: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.override, tt.err.Override)
		})
	}
}

func TestConstructors_CustomCode(t *testing.T) {
	code := "INVOICE_NOT_FOUND"
	err := NewNotFoundError("Invoice not found", true, &code)
	assert.Equal(t, "INVOICE_NOT_FOUND", err.Code)

	err = NewBadRequestError("bad", false, &code, nil, nil)
	assert.Equal(t, "INVOICE_NOT_FOUND", err.Code)
}

func TestHTTPError_Is(t *testing.T) {
	err := NewNotFoundError("missing", false, nil)
	wrapped := &HTTPError{Status: http.StatusConflict}

	assert.True(t, errors.Is(err, wrapped))
	assert.False(t, errors.Is(err, errors.New("plain")))
}

func TestWithMessage(t *testing.T) {
	original := NewBadRequestError("original", true, nil, []FieldError{{Field: "email", Error: "is required"}}, nil)
	copied := original.WithMessage("replaced")

	assert.Equal(t, "original", original.Message)
	assert.Equal(t, "replaced", copied.Message)
	assert.Equal(t, original.Status, copied.Status)
	assert.Equal(t, original.Code, copied.Code)
	assert.Equal(t, original.Override, copied.Override)
	require.Len(t, copied.Errors, 1)
	assert.Equal(t, "email", copied.Errors[0].Field)
}

func TestValidationError(t *testing.T) {
	err := ValidationError(errors.New("stage is unknown"))
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed: stage is unknown", err.Message)
	assert.False(t, err.Override)
}
