// Package logger configures application logging and observability.
//
// It builds the zerolog root logger (console output locally, JSON with
// New Relic log forwarding elsewhere) and owns the LoggerService
// wrapper around the New Relic agent. Everything degrades to no-ops
// when the agent is not configured, so local development needs no
// license key.
package logger

import (
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/streamlinehq/streamline/internal/config"
)

// LoggerService wraps the New Relic application instance. A nil nrApp
// means the agent is disabled and every method is a no-op.
type LoggerService struct {
	nrApp *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when the
// agent is not configured.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

// Shutdown flushes pending agent data, waiting up to the given timeout.
func (ls *LoggerService) Shutdown(timeout time.Duration) {
	if ls == nil || ls.nrApp == nil {
		return
	}
	ls.nrApp.Shutdown(timeout)
}

// NewLoggerService initializes the New Relic agent from config.
// An empty license key disables the agent rather than failing startup.
func NewLoggerService(cfg *config.Config) (*LoggerService, error) {
	obs := cfg.Observability
	if obs == nil || obs.NewRelic.LicenseKey == "" {
		return &LoggerService{}, nil
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(obs.ServiceName),
		newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
		newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
	}
	if obs.NewRelic.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
	}

	nrApp, err := newrelic.NewApplication(opts...)
	if err != nil {
		return nil, err
	}

	return &LoggerService{nrApp: nrApp}, nil
}

// New builds the root application logger.
//
// Local environments get a human-readable console writer. Everywhere
// else logs are JSON on stdout; when the New Relic agent is live and
// log forwarding is enabled, the zerologWriter integration decorates
// each line with trace linking metadata before shipping it.
func New(cfg *config.Config, svc *LoggerService) *zerolog.Logger {
	level := parseLevel(cfg.Observability.GetLogLevel())

	var logger zerolog.Logger
	switch {
	case cfg.Primary.Env == "local" || cfg.Observability.Logging.Format == "console":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

	case svc.GetApplication() != nil && cfg.Observability.NewRelic.AppLogForwardingEnabled:
		writer := zerologWriter.New(os.Stdout, svc.GetApplication())
		logger = zerolog.New(writer).
			Level(level).
			With().Timestamp().Logger()

	default:
		logger = zerolog.New(os.Stdout).
			Level(level).
			With().Timestamp().Logger()
	}

	logger = logger.With().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &logger
}

// WithTraceContext adds trace.id and span.id fields to the logger so
// log lines correlate with the transaction in New Relic.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	md := txn.GetTraceMetadata()
	builder := logger.With()
	if md.TraceID != "" {
		builder = builder.Str("trace.id", md.TraceID)
	}
	if md.SpanID != "" {
		builder = builder.Str("span.id", md.SpanID)
	}
	return builder.Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
