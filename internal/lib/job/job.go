// Package job provides background job processing using asynq.
//
// Tasks are enqueued through the asynq client and executed by a
// Redis-backed worker server. Email tasks are handled inside this
// package; other handlers (e.g. lead rescoring) are registered by the
// service layer via HandleFunc before the worker server starts.
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/streamlinehq/streamline/internal/config"
	"github.com/streamlinehq/streamline/internal/lib/email"
)

// JobService holds the asynq client (enqueue side) and server (worker
// side) plus the mux routing task types to handlers.
type JobService struct {
	// Client enqueues tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	mux    *asynq.ServeMux
	email  *email.Client
	logger *zerolog.Logger
}

// NewJobService builds the asynq client and worker server against the
// configured Redis. Queue weights give urgent work (invoice sends,
// welcome emails) most of the worker share without starving the rest.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		mux:    asynq.NewServeMux(),
		email:  email.NewClient(cfg, logger),
		logger: logger,
	}
}

// HandleFunc registers an external handler for a task type. Must be
// called before Start.
func (j *JobService) HandleFunc(taskType string, handler func(context.Context, *asynq.Task) error) {
	j.mux.HandleFunc(taskType, handler)
}

// Start registers the built-in email handlers and launches the worker
// server. asynq's Start does not block; workers run until Stop.
func (j *JobService) Start() error {
	j.mux.HandleFunc(TaskWelcomeEmail, j.handleWelcomeEmailTask)
	j.mux.HandleFunc(TaskInvoiceEmail, j.handleInvoiceEmailTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.mux); err != nil {
		return err
	}

	return nil
}

// Stop shuts down the worker server and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
