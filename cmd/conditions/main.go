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
	conditionsHandler *handler.ConditionsHandler
	setupOnce         sync.Once
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
		buoyClient := buoy.NewClient(buoyHTTP, buoy.NewStationDirectory(nil, 24*time.Hour))

		service := forecast.NewService(modelClient, buoyClient, forecastCache)

		var locations handler.LocationResolver
		if os.Getenv("SPOT_LOOKUP_DISABLED") == "" {
			if dynamoClient, err := cache.NewDynamoClient(ctx); err == nil {
				locations = alert.NewDynamoStore(dynamoClient)
			} else {
				log.Warn().Err(err).Msg("DynamoDB unavailable, spot lookups disabled")
			}
		}

		conditionsHandler = handler.NewConditionsHandler(service, locations)
	})
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return conditionsHandler.HandleRequest(ctx, request)
}

func main() {
	lambda.Start(handleRequest)
}
