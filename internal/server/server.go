// Package server defines the application container holding shared
// dependencies (config, logger, database pool, redis client, job
// service) plus the HTTP server lifecycle: setup, start, and graceful
// shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/streamlinehq/streamline/internal/config"
	"github.com/streamlinehq/streamline/internal/database"
	"github.com/streamlinehq/streamline/internal/lib/job"
	loggerPkg "github.com/streamlinehq/streamline/internal/logger"
)

// Server composes the application's shared resources. It is the
// container passed into middleware, repositories, services, and
// handlers; the embedded http.Server is configured by SetupHTTPServer
// and run by Start.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService wraps the New Relic agent; nil-safe when the agent
	// is not configured.
	LoggerService *loggerPkg.LoggerService

	// DB is the PostgreSQL pool wrapper.
	DB *database.Database

	// Redis backs the lead-score cache and asynq's queues.
	Redis *redis.Client

	// Job owns the asynq client and worker server. Task handlers are
	// registered by the service layer before StartJobs is called.
	Job *job.JobService

	httpServer *http.Server
}

// New initializes the database pool, redis client, and job service.
// It does not start the HTTP server or the job workers; those are
// separate lifecycle steps so routing and task handlers can be wired
// in between.
//
// A Redis connection failure is logged but does not block startup:
// routing and scoring degrade gracefully without the cache, and asynq
// retries its own connection.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to Redis, continuing without Redis")
	}

	jobService := job.NewJobService(logger, cfg)

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           jobService,
	}, nil
}

// StartJobs starts the background worker server. Call after all task
// handlers are registered.
func (s *Server) StartJobs() error {
	return s.Job.Start()
}

// SetupHTTPServer configures the internal net/http server around the
// provided handler (the echo router). Timeouts come from config, in
// seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until the server stops or fails.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains inflight requests until ctx expires, then closes the
// database pool, job workers, and redis client.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
