package wavemodel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/models"
	"github.com/swellbound/surfcast/internal/observability/metrics"
	"github.com/swellbound/surfcast/pkg/http/client"
)

// requestedParameters are the model variables asked of the provider for
// every point query.
var requestedParameters = []string{
	"waveHeight", "wavePeriod", "windSpeed", "windDirection",
	"swellDirection", "swellHeight", "swellPeriod",
}

// PointFetcher is the model-side contract the reconciliation engine depends on.
type PointFetcher interface {
	FetchPoint(ctx context.Context, location models.Location, asOf time.Time) ([]models.RawModelPoint, error)
}

// Client fetches gridded point forecasts from the wave-model provider.
// Authentication is an API-key header installed on the HTTP client.
type Client struct {
	httpClient   client.Interface
	hourlyPoints int
}

func NewClient(httpClient client.Interface, hourlyPoints int) *Client {
	if hourlyPoints <= 0 {
		hourlyPoints = 24
	}
	return &Client{
		httpClient:   httpClient,
		hourlyPoints: hourlyPoints,
	}
}

// modelPoint is one time sample in the provider's response payload.
type modelPoint struct {
	Time           string  `json:"time"`
	WaveHeight     float64 `json:"waveHeight"`
	WavePeriod     float64 `json:"wavePeriod"`
	WindSpeed      float64 `json:"windSpeed"`
	WindDirection  string  `json:"windDirection"`
	SwellDirection float64 `json:"swellDirection"`
	SwellHeight    float64 `json:"swellHeight"`
	SwellPeriod    float64 `json:"swellPeriod"`
}

type pointResponse struct {
	Points []modelPoint `json:"points"`
}

// FetchPoint fetches the hourly forecast series for a coordinate, ordered
// ascending by timestamp. Transport failures propagate as *client.ProviderError
// after the client's retries are exhausted; an undecodable payload is
// *InvalidDataError.
func (c *Client) FetchPoint(ctx context.Context, location models.Location, asOf time.Time) ([]models.RawModelPoint, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	path := fmt.Sprintf("/v2/point?lat=%.4f&lon=%.4f&parameters=%s&time=%s",
		location.Latitude, location.Longitude,
		url.QueryEscape(strings.Join(requestedParameters, ",")),
		url.QueryEscape(asOf.UTC().Format(time.RFC3339)))

	resp, err := c.httpClient.Get(ctx, path)
	if err != nil {
		metrics.UpstreamFetch(metrics.SourceModel, metrics.ResultError)
		return nil, fmt.Errorf("fetching model point forecast: %w", err)
	}
	metrics.UpstreamFetch(metrics.SourceModel, metrics.ResultSuccess)

	var payload pointResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, NewInvalidDataError("decoding model response", err)
	}

	points := make([]models.RawModelPoint, 0, len(payload.Points))
	for _, p := range payload.Points {
		ts, err := time.Parse(time.RFC3339, p.Time)
		if err != nil {
			return nil, NewInvalidDataError(fmt.Sprintf("parsing point time %q", p.Time), err)
		}
		points = append(points, models.RawModelPoint{
			Timestamp:      ts.UTC(),
			WaveHeight:     p.WaveHeight,
			WavePeriod:     p.WavePeriod,
			WindSpeed:      p.WindSpeed,
			WindDirection:  p.WindDirection,
			SwellDirection: p.SwellDirection,
			SwellHeight:    p.SwellHeight,
			SwellPeriod:    p.SwellPeriod,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	if len(points) < c.hourlyPoints {
		log.Warn().Int("points", len(points)).Int("requested", c.hourlyPoints).
			Msg("Model returned fewer points than requested")
	}

	return points, nil
}
