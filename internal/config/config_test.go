package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	vars := map[string]string{
		"FITNESS_PRIMARY__ENV":                 "development",
		"FITNESS_SERVER__PORT":                 "8080",
		"FITNESS_SERVER__READ_TIMEOUT":         "30",
		"FITNESS_SERVER__WRITE_TIMEOUT":        "30",
		"FITNESS_SERVER__IDLE_TIMEOUT":         "60",
		"FITNESS_SERVER__CORS_ALLOWED_ORIGINS": "http://localhost:3000",
		"FITNESS_DATABASE__HOST":               "localhost",
		"FITNESS_DATABASE__PORT":               "5432",
		"FITNESS_DATABASE__USER":               "gym",
		"FITNESS_DATABASE__PASSWORD":           "swole",
		"FITNESS_DATABASE__NAME":               "fitness",
		"FITNESS_DATABASE__SSL_MODE":           "disable",
		"FITNESS_DATABASE__MAX_OPEN_CONNS":     "25",
		"FITNESS_DATABASE__MAX_IDLE_CONNS":     "5",
		"FITNESS_DATABASE__CONN_MAX_LIFETIME":  "300",
		"FITNESS_DATABASE__CONN_MAX_IDLE_TIME": "60",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Zero(t, cfg.Server.RateLimit)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.False(t, cfg.Observability.NewRelic.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.JobsEnabled())
}

func TestLoadConfig_ObservabilityOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FITNESS_OBSERVABILITY__LOGGING__LEVEL", "debug")
	t.Setenv("FITNESS_OBSERVABILITY__SERVICE_NAME", "something-else")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.True(t, cfg.Observability.HealthChecks.Runs("database"))
	// Service name is never configurable.
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
}

func TestLoadConfig_JobsEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FITNESS_REDIS__ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Redis.Enabled())
	assert.False(t, cfg.JobsEnabled(), "jobs need a resend key too")

	t.Setenv("FITNESS_INTEGRATION__RESEND_API_KEY", "re_test")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.JobsEnabled())
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FITNESS_DATABASE__HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FITNESS_OBSERVABILITY__LOGGING__LEVEL", "loud")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.read_timeout", envKey("FITNESS_SERVER__READ_TIMEOUT"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("FITNESS_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}
