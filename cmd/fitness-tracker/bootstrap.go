package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deppfellow/fitness-tracker/internal/config"
	"github.com/deppfellow/fitness-tracker/internal/logger"
)

// bootstrap loads the config and builds the application logger shared
// by every command.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	return cfg, &log, loggerService, nil
}
