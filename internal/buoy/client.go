package buoy

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/models"
	"github.com/swellbound/surfcast/internal/observability/metrics"
	"github.com/swellbound/surfcast/pkg/http/client"
)

// Reader is the buoy-side contract the reconciliation engine depends on.
type Reader interface {
	FetchNearest(ctx context.Context, location models.Location) (*models.BuoyReading, error)
	FindNearestStation(ctx context.Context, lat, lon float64) (*models.Station, error)
}

// Client selects the nearest reporting buoy for a coordinate and fetches its
// latest realtime2 report.
type Client struct {
	httpClient client.Interface
	directory  *StationDirectory
}

func NewClient(httpClient client.Interface, directory *StationDirectory) *Client {
	if directory == nil {
		directory = NewStationDirectory(nil, 0)
	}
	return &Client{
		httpClient: httpClient,
		directory:  directory,
	}
}

// FindNearestStation scans the station directory for the station with the
// smallest great-circle distance. Ties resolve to the earlier list entry, so
// selection is deterministic.
func (c *Client) FindNearestStation(ctx context.Context, lat, lon float64) (*models.Station, error) {
	stations, err := c.directory.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading station directory: %w", err)
	}
	if len(stations) == 0 {
		return nil, fmt.Errorf("station directory is empty")
	}

	var nearest models.Station
	best := math.Inf(1)
	for _, station := range stations {
		distance := calculateDistance(lat, lon, station.Latitude, station.Longitude)
		if distance < best {
			best = distance
			nearest = station
			nearest.Distance = distance
		}
	}

	log.Trace().Str("station_id", nearest.ID).Float64("distance_km", best).
		Msg("FindNearestStation: selected station")
	return &nearest, nil
}

// FindNearestStations returns up to limit stations ordered by distance.
func (c *Client) FindNearestStations(ctx context.Context, lat, lon float64, limit int) ([]models.Station, error) {
	stations, err := c.directory.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading station directory: %w", err)
	}

	withDistance := make([]models.Station, len(stations))
	for i, station := range stations {
		station.Distance = calculateDistance(lat, lon, station.Latitude, station.Longitude)
		withDistance[i] = station
	}

	sort.SliceStable(withDistance, func(i, j int) bool {
		return withDistance[i].Distance < withDistance[j].Distance
	})

	if limit > 0 && len(withDistance) > limit {
		withDistance = withDistance[:limit]
	}
	return withDistance, nil
}

// FetchNearest fetches and parses the latest report from the station nearest
// to the location. Any failure surfaces as *UnavailableError so callers fall
// back rather than fail hard.
func (c *Client) FetchNearest(ctx context.Context, location models.Location) (*models.BuoyReading, error) {
	station, err := c.FindNearestStation(ctx, location.Latitude, location.Longitude)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/data/realtime2/%s.txt", station.ID))
	if err != nil {
		metrics.UpstreamFetch(metrics.SourceBuoy, metrics.ResultError)
		return nil, &UnavailableError{StationID: station.ID, Err: err}
	}

	reading, err := ParseReport(string(resp.Body))
	if err != nil {
		metrics.UpstreamFetch(metrics.SourceBuoy, metrics.ResultError)
		return nil, &UnavailableError{StationID: station.ID, Err: err}
	}
	reading.StationID = station.ID
	metrics.UpstreamFetch(metrics.SourceBuoy, metrics.ResultSuccess)

	log.Debug().Str("station_id", station.ID).Float64("wave_height", reading.WaveHeight).
		Msg("Fetched buoy reading")
	return reading, nil
}

func calculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371.0 // km

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
