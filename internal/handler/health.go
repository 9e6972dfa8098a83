package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deppfellow/fitness-tracker/internal/middleware"
	"github.com/deppfellow/fitness-tracker/internal/server"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	// checkFailedMessage is reported in place of the dependency error,
	// which is only logged.
	checkFailedMessage = "dependency unreachable"
)

// HealthHandler reports whether the service and its dependencies are
// reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthReport is the body of GET /status.
type HealthReport struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckHealth handles GET /status: 200 when every enabled check passes,
// 503 otherwise. An unconfigured redis is not checked.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()
	checksCfg := h.server.Config.Observability.HealthChecks

	report := HealthReport{
		Status:      statusHealthy,
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]CheckResult{},
	}

	run := func(name string, ping func(ctx context.Context) error) {
		ctx, cancel := context.WithTimeout(c.Request().Context(), checksCfg.Timeout)
		defer cancel()

		result := h.runCheck(ctx, logger, name, ping)
		if result.Status != statusHealthy {
			report.Status = statusUnhealthy
		}
		report.Checks[name] = result
	}

	if checksCfg.Runs("database") {
		run("database", h.server.DB.Ping)
	}
	if checksCfg.Runs("redis") && h.server.Redis != nil {
		run("redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	status := http.StatusOK
	if report.Status != statusHealthy {
		status = http.StatusServiceUnavailable
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordFailure("overall", "", time.Since(start))
	} else {
		logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	}

	return c.JSON(status, report)
}

func (h *HealthHandler) runCheck(ctx context.Context, logger zerolog.Logger, name string, ping func(ctx context.Context) error) CheckResult {
	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")
		h.recordFailure(name, err.Error(), elapsed)
		return CheckResult{Status: statusUnhealthy, ResponseTime: elapsed.String(), Error: checkFailedMessage}
	}

	logger.Debug().Str("check", name).Dur("response_time", elapsed).Msg("health check passed")
	return CheckResult{Status: statusHealthy, ResponseTime: elapsed.String()}
}

// recordFailure records a HealthCheckError custom event in New Relic.
func (h *HealthHandler) recordFailure(check, message string, elapsed time.Duration) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs := map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
	}
	if message != "" {
		attrs["error_message"] = message
	}
	app.RecordCustomEvent("HealthCheckError", attrs)
}
