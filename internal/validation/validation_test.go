package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamlinehq/streamline/internal/errs"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2,max=10"`
	Stage string `json:"stage" validate:"omitempty,oneof=new contacted"`
}

func (p *samplePayload) Validate() error {
	return Struct(p)
}

func TestExtractValidationError_TagMessages(t *testing.T) {
	tests := []struct {
		name      string
		payload   samplePayload
		wantField string
		wantMsg   string
	}{
		{
			name:      "required",
			payload:   samplePayload{Name: "ok"},
			wantField: "email",
			wantMsg:   "is required",
		},
		{
			name:      "email format",
			payload:   samplePayload{Email: "not-an-email", Name: "ok"},
			wantField: "email",
			wantMsg:   "must be a valid email address",
		},
		{
			name:      "min length",
			payload:   samplePayload{Email: "a@b.co", Name: "x"},
			wantField: "name",
			wantMsg:   "must be at least 2 characters",
		},
		{
			name:      "max length",
			payload:   samplePayload{Email: "a@b.co", Name: strings.Repeat("x", 11)},
			wantField: "name",
			wantMsg:   "must not exceed 10 characters",
		},
		{
			name:      "oneof",
			payload:   samplePayload{Email: "a@b.co", Name: "ok", Stage: "won"},
			wantField: "stage",
			wantMsg:   "must be one of: new contacted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			require.Error(t, err)

			msg, fieldErrors := extractValidationError(err)
			assert.Equal(t, "Validation failed", msg)
			require.Len(t, fieldErrors, 1)
			assert.Equal(t, tt.wantField, fieldErrors[0].Field)
			assert.Equal(t, tt.wantMsg, fieldErrors[0].Error)
		})
	}
}

func TestExtractValidationError_CustomErrors(t *testing.T) {
	err := CustomValidationErrors{
		{Field: "scheduled_end", Message: "must be after scheduled_start"},
	}

	msg, fieldErrors := extractValidationError(err)
	assert.Equal(t, "Validation failed", msg)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "scheduled_end", fieldErrors[0].Field)
	assert.Equal(t, "must be after scheduled_start", fieldErrors[0].Error)
}

func TestBindAndValidate(t *testing.T) {
	e := echo.New()

	newContext := func(body string) echo.Context {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("valid payload", func(t *testing.T) {
		payload := new(samplePayload)
		err := BindAndValidate(newContext(`{"email":"a@b.co","name":"Ada"}`), payload)
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", payload.Email)
	})

	t.Run("malformed body", func(t *testing.T) {
		err := BindAndValidate(newContext(`{"email":`), new(samplePayload))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "Malformed request body", httpErr.Message)
	})

	t.Run("validation failure carries field errors", func(t *testing.T) {
		err := BindAndValidate(newContext(`{"name":"Ada"}`), new(samplePayload))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "email", httpErr.Errors[0].Field)
	})
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0e4edd45-9cb8-45a4-9d67-1e9cf6040abc"))
	assert.True(t, IsValidUUID("0E4EDD45-9CB8-45A4-9D67-1E9CF6040ABC"))
	assert.False(t, IsValidUUID("0e4edd45-9cb8-45a4-9d67"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}
