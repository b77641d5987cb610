package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	HTTPTimeout time.Duration

	// Upstream providers
	WaveModelBaseURL string
	WaveModelAPIKey  string
	NDBCBaseURL      string

	// Forecast policy
	HourlyForecastPoints   int
	MinConfidenceThreshold int

	// Alert policy. Zero means a rule may fire on every evaluation cycle
	// while conditions keep matching.
	AlertRefireInterval time.Duration
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithWaveModelAPIKey allows setting the wave model provider API key
func WithWaveModelAPIKey(key string) Option {
	return func(c *Config) {
		c.WaveModelAPIKey = key
	}
}

// WithHourlyForecastPoints allows setting the requested forecast length
func WithHourlyForecastPoints(points int) Option {
	return func(c *Config) {
		if points > 0 {
			c.HourlyForecastPoints = points
		}
	}
}

// WithAlertRefireInterval allows setting the minimum re-fire interval per rule
func WithAlertRefireInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.AlertRefireInterval = interval
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:            "production",
		LogLevel:               zerolog.InfoLevel,
		HTTPTimeout:            10 * time.Second,
		WaveModelBaseURL:       "https://api.swellmodel.io",
		NDBCBaseURL:            "https://www.ndbc.noaa.gov",
		HourlyForecastPoints:   24,
		MinConfidenceThreshold: 70,
		AlertRefireInterval:    0,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithWaveModelAPIKey(os.Getenv("WAVE_MODEL_API_KEY")),
		WithHourlyForecastPoints(getIntEnvOrDefault("FORECAST_HOURLY_POINTS", 24)),
		WithAlertRefireInterval(getSecondsEnvOrDefault("ALERT_REFIRE_INTERVAL_SECONDS", 0)),
	)
	if url := os.Getenv("WAVE_MODEL_BASE_URL"); url != "" {
		cfg.WaveModelBaseURL = url
	}
	if url := os.Getenv("NDBC_BASE_URL"); url != "" {
		cfg.NDBCBaseURL = url
	}
	cfg.MinConfidenceThreshold = getIntEnvOrDefault("MIN_CONFIDENCE_THRESHOLD", 70)
	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSecondsEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
