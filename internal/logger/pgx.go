package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// pgx tracelog levels, mirrored here so the database package can pick
// one without importing tracelog just for the constant.
const (
	PgxTraceLogLevelNone  = 0
	PgxTraceLogLevelError = 1
	PgxTraceLogLevelWarn  = 2
	PgxTraceLogLevelInfo  = 3
	PgxTraceLogLevelDebug = 4
	PgxTraceLogLevelTrace = 5
)

// NewPgxLogger returns the dedicated logger fed to the pgx-zerolog
// adapter. SQL logging is console-only noise for local development, so
// it always uses the console writer.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("component", "pgx").Logger()
}

// GetPgxTraceLogLevel maps the application log level onto the pgx
// tracelog verbosity. Debug logs full statements; anything quieter
// only reports query errors.
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return PgxTraceLogLevelTrace
	case zerolog.DebugLevel:
		return PgxTraceLogLevelDebug
	case zerolog.InfoLevel:
		return PgxTraceLogLevelInfo
	case zerolog.WarnLevel:
		return PgxTraceLogLevelWarn
	default:
		return PgxTraceLogLevelError
	}
}
