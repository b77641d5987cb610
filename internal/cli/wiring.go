package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/swellbound/surfcast/internal/buoy"
	"github.com/swellbound/surfcast/internal/cache"
	"github.com/swellbound/surfcast/internal/config"
	"github.com/swellbound/surfcast/internal/forecast"
	"github.com/swellbound/surfcast/internal/models"
	"github.com/swellbound/surfcast/internal/wavemodel"
	"github.com/swellbound/surfcast/pkg/http/client"
)

// buildService wires a forecast service for one-shot CLI invocations. The CLI
// keeps its cache in process memory only, no DynamoDB behind it.
func buildService(ctx context.Context) (*forecast.Service, *buoy.Client, error) {
	cacheConfig := config.GetCacheConfig()
	cacheConfig.EnableDynamoCache = false

	forecastCache, err := cache.NewForecastCache(ctx, cacheConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing forecast cache: %w", err)
	}

	headers := map[string]string{}
	if apiKey := viper.GetString("wave_model_api_key"); apiKey != "" {
		headers["X-Api-Key"] = apiKey
	}
	modelHTTP := client.New(client.Options{
		Name:    "model",
		BaseURL: viper.GetString("wave_model_base_url"),
		Timeout: 10 * time.Second,
		Headers: headers,
	})
	modelClient := wavemodel.NewClient(modelHTTP, viper.GetInt("hourly_points"))

	buoyHTTP := client.New(client.Options{
		Name:    "buoy",
		BaseURL: viper.GetString("ndbc_base_url"),
		Timeout: 10 * time.Second,
	})
	buoyClient := buoy.NewClient(buoyHTTP, buoy.NewStationDirectory(nil, 24*time.Hour))

	return forecast.NewService(modelClient, buoyClient, forecastCache), buoyClient, nil
}

// spotFromFlags builds an ad-hoc location from the lat/lon flags.
func spotFromFlags() (models.Location, error) {
	location := models.Location{
		ID:        fmt.Sprintf("%.4f,%.4f", viper.GetFloat64("lat"), viper.GetFloat64("lon")),
		Name:      "cli",
		Latitude:  viper.GetFloat64("lat"),
		Longitude: viper.GetFloat64("lon"),
	}
	if err := location.Validate(); err != nil {
		return models.Location{}, err
	}
	return location, nil
}
