package sqlerr

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code categorizes Postgres SQLSTATE values into the handful of cases
// the API distinguishes.
type Code int

const (
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	ExclusionViolation
	SerializationFailure
	DeadlockDetected
)

// Severity mirrors the Postgres error severity field.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
	SeverityPanic
	SeverityWarning
)

// SQLSTATE values, per the Postgres appendix on error codes.
const (
	sqlstateUniqueViolation      = "23505"
	sqlstateForeignKeyViolation  = "23503"
	sqlstateNotNullViolation     = "23502"
	sqlstateCheckViolation       = "23514"
	sqlstateExclusionViolation   = "23P01"
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
)

// MapCode converts a raw SQLSTATE string into a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case sqlstateUniqueViolation:
		return UniqueViolation
	case sqlstateForeignKeyViolation:
		return ForeignKeyViolation
	case sqlstateNotNullViolation:
		return NotNullViolation
	case sqlstateCheckViolation:
		return CheckViolation
	case sqlstateExclusionViolation:
		return ExclusionViolation
	case sqlstateSerializationFailure:
		return SerializationFailure
	case sqlstateDeadlockDetected:
		return DeadlockDetected
	default:
		return Other
	}
}

// MapSeverity converts the Postgres severity string into a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Error is a normalized database error carrying the schema metadata
// pgconn exposes, so callers can build messages without re-parsing
// driver strings.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr *pgconn.PgError
}

func (e *Error) Error() string {
	return fmt.Sprintf("sqlerr: %s (SQLSTATE %s)", e.Message, e.DatabaseCode)
}

// Unwrap exposes the original driver error for errors.As chains.
func (e *Error) Unwrap() error {
	if e.driverErr == nil {
		return nil
	}
	return e.driverErr
}
