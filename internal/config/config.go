// Package config loads and validates application configuration.
//
// Configuration comes from environment variables with the STREAMLINE_
// prefix (a .env file is loaded automatically when present), is
// unmarshaled into typed structs via koanf, and is validated with
// go-playground/validator so the process fails fast on missing or
// malformed values.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a .env file into the process environment
	// before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object. Env vars map onto it with
// dot-delimited koanf keys, e.g. STREAMLINE_SERVER.PORT -> server.port.
//
// Observability is a pointer because it is optional; defaults are
// injected when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Inbox         InboxConfig          `koanf:"inbox"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary identifies the runtime environment (local, staging,
// production). It tags logs and switches dev-only behavior like SQL
// tracing.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig holds HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// Rate limiting for the API group. Zero values fall back to the
	// defaults applied in Load.
	RateLimitPerSecond float64 `koanf:"rate_limit_per_second"`
	RateLimitBurst     int     `koanf:"rate_limit_burst"`
}

// DatabaseConfig holds PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig holds Redis connection details ("host:port"). Redis backs
// the asynq job queues and the lead-score cache.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the Clerk secret key used to verify session tokens.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
}

// IntegrationConfig groups third-party API credentials.
type IntegrationConfig struct {
	// ResendAPIKey authenticates against the Resend email API. Empty
	// disables outbound email (tasks log and succeed without sending).
	ResendAPIKey string `koanf:"resend_api_key"`

	// EmailFrom is the sender identity for outbound mail.
	EmailFrom string `koanf:"email_from"`
}

// InboxConfig tunes the inbox message router.
type InboxConfig struct {
	// DefaultAssigneeID receives messages the router cannot score.
	DefaultAssigneeID string `koanf:"default_assignee_id"`
}

// Load reads, unmarshals, validates, and defaults the configuration.
// Any failure is fatal: a service with broken config should not start.
func Load() (*Config, error) {
	// Config loading happens before the real logger exists, so use a
	// minimal console logger for startup failures.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("STREAMLINE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "STREAMLINE_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load environment variables")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal config")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}

	if mainConfig.Server.RateLimitPerSecond <= 0 {
		mainConfig.Server.RateLimitPerSecond = 20
	}
	if mainConfig.Server.RateLimitBurst <= 0 {
		mainConfig.Server.RateLimitBurst = 40
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are not configurable: telemetry must
	// be tagged consistently.
	mainConfig.Observability.ServiceName = "streamline"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
