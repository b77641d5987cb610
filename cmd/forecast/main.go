package main

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/alert"
	"github.com/swellbound/surfcast/internal/buoy"
	"github.com/swellbound/surfcast/internal/cache"
	"github.com/swellbound/surfcast/internal/config"
	"github.com/swellbound/surfcast/internal/forecast"
	"github.com/swellbound/surfcast/internal/handler"
	"github.com/swellbound/surfcast/internal/observability/metrics"
	"github.com/swellbound/surfcast/internal/wavemodel"
	"github.com/swellbound/surfcast/pkg/http/client"
)

var (
	forecastHandler *handler.ForecastHandler
	setupOnce       sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()
		metrics.Init(nil)

		ctx := context.Background()
		cacheConfig := config.GetCacheConfig()

		forecastCache, err := cache.NewForecastCache(ctx, cacheConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("Initializing forecast cache")
		}

		modelHeaders := map[string]string{}
		if cfg.WaveModelAPIKey != "" {
			modelHeaders["X-Api-Key"] = cfg.WaveModelAPIKey
		}
		modelHTTP := client.New(client.Options{
			Name:    "model",
			BaseURL: cfg.WaveModelBaseURL,
			Timeout: cfg.HTTPTimeout,
			Headers: modelHeaders,
		})
		modelClient := wavemodel.NewClient(modelHTTP, cfg.HourlyForecastPoints)

		buoyHTTP := client.New(client.Options{
			Name:    "buoy",
			BaseURL: cfg.NDBCBaseURL,
			Timeout: cfg.HTTPTimeout,
		})
		buoyClient := buoy.NewClient(buoyHTTP, stationDirectory(ctx, cacheConfig))

		service := forecast.NewService(modelClient, buoyClient, forecastCache)
		forecastHandler = handler.NewForecastHandler(service, locationResolver(ctx))
	})
}

// locationResolver wires spot lookups when DynamoDB is reachable. Without it
// the handler still serves raw coordinate requests.
func locationResolver(ctx context.Context) handler.LocationResolver {
	dynamoClient, err := cache.NewDynamoClient(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("DynamoDB unavailable, spot lookups disabled")
		return nil
	}
	return alert.NewDynamoStore(dynamoClient)
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return forecastHandler.HandleRequest(ctx, request)
}

func main() {
	lambda.Start(handleRequest)
}

func stationDirectory(ctx context.Context, cacheConfig *config.CacheConfig) *buoy.StationDirectory {
	bucket := os.Getenv("STATION_CACHE_BUCKET")
	if bucket == "" {
		return buoy.NewStationDirectory(nil, 24*time.Hour)
	}
	s3Cache, err := buoy.NewS3StationCache(ctx, bucket, cacheConfig.GetStationListTTL())
	if err != nil {
		log.Warn().Err(err).Msg("S3 station cache unavailable, using builtin directory")
		return buoy.NewStationDirectory(nil, 24*time.Hour)
	}
	return buoy.NewStationDirectory(s3Cache, 24*time.Hour)
}
