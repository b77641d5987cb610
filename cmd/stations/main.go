package main

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/buoy"
	"github.com/swellbound/surfcast/internal/config"
	"github.com/swellbound/surfcast/internal/handler"
	"github.com/swellbound/surfcast/pkg/http/client"
)

var (
	stationsHandler *handler.StationsHandler
	setupOnce       sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		ctx := context.Background()
		cacheConfig := config.GetCacheConfig()

		directory := buoy.NewStationDirectory(nil, 24*time.Hour)
		if bucket := os.Getenv("STATION_CACHE_BUCKET"); bucket != "" {
			s3Cache, err := buoy.NewS3StationCache(ctx, bucket, cacheConfig.GetStationListTTL())
			if err != nil {
				log.Warn().Err(err).Msg("S3 station cache unavailable, using builtin directory")
			} else {
				directory = buoy.NewStationDirectory(s3Cache, 24*time.Hour)
			}
		}

		buoyHTTP := client.New(client.Options{
			Name:    "buoy",
			BaseURL: cfg.NDBCBaseURL,
			Timeout: cfg.HTTPTimeout,
		})
		stationsHandler = handler.NewStationsHandler(buoy.NewClient(buoyHTTP, directory))
	})
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return stationsHandler.HandleRequest(ctx, request)
}

func main() {
	lambda.Start(handleRequest)
}
