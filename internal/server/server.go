// Package server defines the core Server struct that composes the app's main dependencies.
//
// It contains the initialization logic to spin up the HTTP server
// and handles graceful shutdowns.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client (optional)
//   - background job worker server (asynq, optional)
//   - http.Server
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

	"github.com/deppfellow/fitness-tracker/internal/config"
	"github.com/deppfellow/fitness-tracker/internal/database"
	"github.com/deppfellow/fitness-tracker/internal/lib/job"
	loggerPkg "github.com/deppfellow/fitness-tracker/internal/logger"
)

const redisPingTimeout = 5 * time.Second

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. Redis and Job are nil when they are
// not configured.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client
	Job           *job.JobService

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// The database must be reachable. Redis is optional: a failed ping is
// logged and startup continues with jobs disabled. The job worker only
// starts when both Redis and Resend are configured and Redis answered.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}

	if err := s.setupBackground(); err != nil {
		return nil, err
	}
	return s, nil
}

// setupBackground connects Redis and starts the job worker when
// configured. On failure every resource the server holds is released.
func (s *Server) setupBackground() error {
	if !s.Config.Redis.Enabled() {
		s.Logger.Info().Msg("background jobs disabled: redis address not set")
		return nil
	}

	client, reachable := newRedisClient(s.Config, s.Logger, s.LoggerService)
	s.Redis = client

	switch {
	case !s.Config.JobsEnabled():
		s.Logger.Info().Msg("background jobs disabled: resend api key not set")
		return nil
	case !reachable:
		s.Logger.Warn().Msg("background jobs disabled: redis unreachable")
		return nil
	}

	jobService := job.NewJobService(s.Logger, s.Config)
	if err := jobService.Start(); err != nil {
		jobService.Stop()
		if closeErr := s.Shutdown(context.Background()); closeErr != nil {
			s.Logger.Error().Err(closeErr).Msg("failed to release resources after job server error")
		}
		return fmt.Errorf("failed to start job server: %w", err)
	}
	s.Job = jobService
	return nil
}

// newRedisClient builds the client and reports whether Redis answered a
// ping. The client is returned either way so health checks can report it.
func newRedisClient(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*redis.Client, bool) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to Redis, continuing without it")
		return client, false
	}

	return client, true
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops and
// returns nil after a graceful Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then releases the job worker, redis and the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	var errList []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errList = append(errList, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	return errors.Join(errList...)
}
