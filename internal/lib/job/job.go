// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: tasks are enqueued with an
// asynq.Client and executed by the workers of an asynq.Server.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/fitness-tracker/internal/config"
	"github.com/deppfellow/fitness-tracker/internal/lib/email"
)

// WelcomeSender delivers the welcome email for a new member.
type WelcomeSender interface {
	SendWelcomeEmail(ctx context.Context, to, name, membershipType string) error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	emails WelcomeSender
	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by the configured Redis and
// delivering email through Resend.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		Logger: newAsynqLogger(logger),
	})

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		emails: email.NewClient(cfg, logger),
		logger: logger,
	}
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	return mux
}

// Start launches the workers in the background. It returns once they are
// running.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.mux()); err != nil {
		return fmt.Errorf("start asynq server: %w", err)
	}
	return nil
}

// Stop waits for running tasks to finish and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close asynq client")
	}
}

// EnqueueWelcomeEmail schedules the welcome email for a new member.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, name, membershipType string) error {
	task, err := NewWelcomeEmailTask(to, name, membershipType)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskWelcome, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("welcome email enqueued")
	return nil
}
