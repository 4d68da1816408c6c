package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamlinehq/streamline/internal/errs"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		sqlstate string
		want     Code
	}{
		{"23505", UniqueViolation},
		{"23503", ForeignKeyViolation},
		{"23502", NotNullViolation},
		{"23514", CheckViolation},
		{"23P01", ExclusionViolation},
		{"40001", SerializationFailure},
		{"40P01", DeadlockDetected},
		{"42601", Other},
		{"", Other},
	}

	for _, tt := range tests {
		t.Run(tt.sqlstate, func(t *testing.T) {
			assert.Equal(t, tt.want, MapCode(tt.sqlstate))
		})
	}
}

func TestGenerateErrorCode(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		errType Code
		want    string
	}{
		{name: "unique on users", table: "users", errType: UniqueViolation, want: "USER_ALREADY_EXISTS"},
		{name: "fk on jobs", table: "jobs", errType: ForeignKeyViolation, want: "JOB_NOT_FOUND"},
		{name: "not null on invoices", table: "invoices", errType: NotNullViolation, want: "INVOICE_REQUIRED"},
		{name: "check on leads", table: "leads", errType: CheckViolation, want: "LEAD_INVALID"},
		{name: "unknown violation", table: "contacts", errType: Other, want: "CONTACT_ERROR"},
		{name: "empty table", table: "", errType: UniqueViolation, want: "RECORD_ALREADY_EXISTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateErrorCode(tt.table, tt.errType))
		})
	}
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       string
	}{
		{name: "postgres default", constraint: "users_email_key", want: "email"},
		{name: "ukey suffix", constraint: "contacts_phone_ukey", want: "phone"},
		{name: "unique prefix", constraint: "unique_users_email", want: "email"},
		{name: "unique prefix too short", constraint: "unique_email", want: ""},
		{name: "no convention", constraint: "some_check", want: ""},
		{name: "empty", constraint: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractColumnForUniqueViolation(tt.constraint))
		})
	}
}

func TestGetEntityName(t *testing.T) {
	tests := []struct {
		name   string
		table  string
		column string
		want   string
	}{
		{name: "fk column wins", table: "jobs", column: "contact_id", want: "Contact"},
		{name: "table singularized", table: "invoices", column: "", want: "Invoice"},
		{name: "no metadata", table: "", column: "", want: "record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getEntityName(tt.table, tt.column))
		})
	}
}

func TestHandleError_UniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		TableName:      "users",
		ConstraintName: "users_email_key",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		TableName:  "jobs",
		ColumnName: "contact_id",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "JOB_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Contact does not exist", httpErr.Message)
	assert.False(t, httpErr.Override)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		TableName:  "jobs",
		ColumnName: "title",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "The Title is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestHandleError_ExclusionViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23P01",
		TableName:      "resource_assignments",
		ConstraintName: "resource_assignments_no_overlap",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "RESOURCE_ASSIGNMENT_OVERLAP", httpErr.Code)
	assert.Equal(t, "This Resource Assignment conflicts with an existing one", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_NoRows(t *testing.T) {
	t.Run("with table prefix", func(t *testing.T) {
		err := HandleError(fmt.Errorf("table:users: %w", pgx.ErrNoRows))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "User not found", httpErr.Message)
		assert.True(t, httpErr.Override)
	})

	t.Run("bare ErrNoRows", func(t *testing.T) {
		err := HandleError(pgx.ErrNoRows)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "Resource not found", httpErr.Message)
		assert.False(t, httpErr.Override)
	})
}

func TestHandleError_HTTPErrorPassthrough(t *testing.T) {
	original := errs.NewConflictError("Resource is already booked for this time window.", true, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UnknownError(t *testing.T) {
	err := HandleError(errors.New("connection reset"))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), httpErr.Message)
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505", Severity: "ERROR"})
	assert.Equal(t, UniqueViolation, ErrCode(converted))
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("insert: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestConvertPgError_Unwrap(t *testing.T) {
	src := &pgconn.PgError{Code: "40P01", Severity: "FATAL", TableName: "schedule_assignments"}
	converted := ConvertPgError(src)

	assert.Equal(t, DeadlockDetected, converted.Code)
	assert.Equal(t, SeverityFatal, converted.Severity)

	var pgerr *pgconn.PgError
	require.ErrorAs(t, converted, &pgerr)
	assert.Same(t, src, pgerr)
}
