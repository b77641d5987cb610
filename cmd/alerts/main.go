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
	"github.com/swellbound/surfcast/internal/observability/metrics"
	"github.com/swellbound/surfcast/internal/wavemodel"
	"github.com/swellbound/surfcast/pkg/http/client"
)

var (
	engine    *alert.Engine
	setupOnce sync.Once
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
		conditionsCache, err := cache.NewConditionsCache(cacheConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("Initializing conditions cache")
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

		dynamoClient, err := cache.NewDynamoClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Initializing DynamoDB client")
		}
		store := alert.NewDynamoStore(dynamoClient)

		var dispatcher alert.Dispatcher = alert.LogDispatcher{}
		if topicARN := os.Getenv("ALERT_TOPIC_ARN"); topicARN != "" {
			snsDispatcher, err := alert.NewSNSDispatcher(ctx, topicARN)
			if err != nil {
				log.Fatal().Err(err).Msg("Initializing SNS dispatcher")
			}
			dispatcher = snsDispatcher
		}

		engine = alert.NewEngine(service, conditionsCache, store, dispatcher, cfg.AlertRefireInterval)
	})
}

func handleRequest(ctx context.Context, event events.CloudWatchEvent) error {
	summary, err := engine.RunOnce(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Alert evaluation cycle failed")
		return err
	}
	log.Info().
		Int("evaluated", summary.Evaluated).
		Int("fired", summary.Fired).
		Int("failed", summary.Failed).
		Msg("Alert evaluation cycle complete")
	return nil
}

func main() {
	lambda.Start(handleRequest)
}
