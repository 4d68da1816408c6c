package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/streamlinehq/streamline/internal/config"
	"github.com/streamlinehq/streamline/internal/handler"
	"github.com/streamlinehq/streamline/internal/logger"
	"github.com/streamlinehq/streamline/internal/middleware"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/router"
	"github.com/streamlinehq/streamline/internal/server"
	"github.com/streamlinehq/streamline/internal/service"
)

// shutdownTimeout bounds how long inflight requests may drain.
const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and background job workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	log := logger.New(cfg, loggerService)

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(s)

	// NewService registers service-layer task handlers on the job mux,
	// so it must run before the workers start.
	services, err := service.NewService(s, repos)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := s.StartJobs(); err != nil {
		return fmt.Errorf("failed to start job workers: %w", err)
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)
	e := router.New(s, handlers, middlewares)

	s.SetupHTTPServer(e)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	if loggerService != nil {
		loggerService.Shutdown(10 * time.Second)
	}

	log.Info().Msg("server stopped")
	return nil
}
