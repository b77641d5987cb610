package config

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigWithDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://api.swellmodel.io", cfg.WaveModelBaseURL)
	assert.Equal(t, "https://www.ndbc.noaa.gov", cfg.NDBCBaseURL)
	assert.Equal(t, 24, cfg.HourlyForecastPoints)
	assert.Equal(t, 70, cfg.MinConfidenceThreshold)
	assert.Equal(t, time.Duration(0), cfg.AlertRefireInterval)
}

func TestWithEnvironment(t *testing.T) {
	cfg := New(WithEnvironment("development"))

	assert.Equal(t, "development", cfg.Environment)
}

func TestWithLogLevel(t *testing.T) {
	cfg := New(WithLogLevel("debug"))

	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestWithLogLevelInvalidFallsBack(t *testing.T) {
	cfg := New(WithLogLevel("shouting"))

	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestWithHourlyForecastPoints(t *testing.T) {
	cfg := New(WithHourlyForecastPoints(48))
	assert.Equal(t, 48, cfg.HourlyForecastPoints)

	// Non-positive values keep the default.
	cfg = New(WithHourlyForecastPoints(0))
	assert.Equal(t, 24, cfg.HourlyForecastPoints)
}

func TestWithAlertRefireInterval(t *testing.T) {
	cfg := New(WithAlertRefireInterval(time.Hour))

	assert.Equal(t, time.Hour, cfg.AlertRefireInterval)
}

func TestInitializeLogging(t *testing.T) {
	cfg := New(WithEnvironment("local"), WithLogLevel("debug"))
	cfg.InitializeLogging()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("WAVE_MODEL_API_KEY", "test-key")
	t.Setenv("WAVE_MODEL_BASE_URL", "https://model.example.com")
	t.Setenv("FORECAST_HOURLY_POINTS", "12")
	t.Setenv("ALERT_REFIRE_INTERVAL_SECONDS", "900")

	cfg := LoadFromEnv()

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "test-key", cfg.WaveModelAPIKey)
	assert.Equal(t, "https://model.example.com", cfg.WaveModelBaseURL)
	assert.Equal(t, 12, cfg.HourlyForecastPoints)
	assert.Equal(t, 15*time.Minute, cfg.AlertRefireInterval)
}

func TestGetCacheConfigDefaults(t *testing.T) {
	os.Unsetenv("CACHE_FORECAST_MAX_AGE_SECONDS")
	os.Unsetenv("CACHE_ENABLE_DYNAMO")

	cfg := GetCacheConfig()

	assert.Equal(t, 1000, cfg.ForecastLRUSize)
	assert.Equal(t, 3600, cfg.ForecastMaxAgeSeconds)
	assert.Equal(t, time.Hour, cfg.GetForecastMaxAge())
	assert.Equal(t, 48*time.Hour, cfg.GetDynamoTTL())
	assert.Equal(t, 5*time.Minute, cfg.GetConditionsTTL())
	assert.True(t, cfg.EnableDynamoCache)
}

func TestGetCacheConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_FORECAST_MAX_AGE_SECONDS", "600")
	t.Setenv("CACHE_ENABLE_DYNAMO", "false")

	cfg := GetCacheConfig()

	assert.Equal(t, 600, cfg.ForecastMaxAgeSeconds)
	assert.Equal(t, 10*time.Minute, cfg.GetForecastMaxAge())
	assert.False(t, cfg.EnableDynamoCache)
}
