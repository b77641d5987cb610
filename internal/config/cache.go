package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// Forecast cache settings
	ForecastLRUSize       int
	ForecastMaxAgeSeconds int
	ForecastDynamoTTLDays int

	// Buoy station directory settings
	StationListTTLDays int

	// Per-cycle conditions cache settings
	ConditionsLRUSize    int
	ConditionsTTLSeconds int

	// Maintenance sweep settings
	SweepIntervalMinutes int

	// General settings
	EnableDynamoCache bool
}

const (
	// Default values
	defaultForecastLRUSize       = 1000
	defaultForecastMaxAgeSeconds = 3600
	defaultForecastDynamoTTLDays = 2
	defaultStationListTTLDays    = 2
	defaultConditionsLRUSize     = 500
	defaultConditionsTTLSeconds  = 300
	defaultSweepIntervalMinutes  = 15
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		ForecastLRUSize:       getEnvInt("CACHE_FORECAST_LRU_SIZE", defaultForecastLRUSize),
		ForecastMaxAgeSeconds: getEnvInt("CACHE_FORECAST_MAX_AGE_SECONDS", defaultForecastMaxAgeSeconds),
		ForecastDynamoTTLDays: getEnvInt("CACHE_DYNAMO_TTL_DAYS", defaultForecastDynamoTTLDays),
		StationListTTLDays:    getEnvInt("CACHE_STATION_LIST_TTL_DAYS", defaultStationListTTLDays),
		ConditionsLRUSize:     getEnvInt("CACHE_CONDITIONS_LRU_SIZE", defaultConditionsLRUSize),
		ConditionsTTLSeconds:  getEnvInt("CACHE_CONDITIONS_TTL_SECONDS", defaultConditionsTTLSeconds),
		SweepIntervalMinutes:  getEnvInt("CACHE_SWEEP_INTERVAL_MINUTES", defaultSweepIntervalMinutes),
		EnableDynamoCache:     getEnvBool("CACHE_ENABLE_DYNAMO", true),
	}

	log.Debug().
		Int("ForecastLRUSize", config.ForecastLRUSize).
		Int("ForecastMaxAgeSeconds", config.ForecastMaxAgeSeconds).
		Int("ForecastDynamoTTLDays", config.ForecastDynamoTTLDays).
		Int("StationListTTLDays", config.StationListTTLDays).
		Int("ConditionsLRUSize", config.ConditionsLRUSize).
		Int("ConditionsTTLSeconds", config.ConditionsTTLSeconds).
		Int("SweepIntervalMinutes", config.SweepIntervalMinutes).
		Bool("EnableDynamoCache", config.EnableDynamoCache).
		Msg("Cache configuration loaded")

	return config
}

// Helper methods for the CacheConfig struct
func (c *CacheConfig) GetForecastMaxAge() time.Duration {
	return time.Duration(c.ForecastMaxAgeSeconds) * time.Second
}

func (c *CacheConfig) GetDynamoTTL() time.Duration {
	return time.Duration(c.ForecastDynamoTTLDays) * 24 * time.Hour
}

func (c *CacheConfig) GetStationListTTL() time.Duration {
	return time.Duration(c.StationListTTLDays) * 24 * time.Hour
}

func (c *CacheConfig) GetConditionsTTL() time.Duration {
	return time.Duration(c.ConditionsTTLSeconds) * time.Second
}

func (c *CacheConfig) GetSweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMinutes) * time.Minute
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
