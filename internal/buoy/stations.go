package buoy

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/models"
)

// defaultStations is the built-in buoy directory: NDBC stations close to
// surfable coastline. Order matters: nearest-station ties resolve to the
// earlier entry.
var defaultStations = []models.Station{
	{ID: "46221", Name: "Santa Monica Bay, CA", Latitude: 33.855, Longitude: -118.633},
	{ID: "46222", Name: "San Pedro, CA", Latitude: 33.618, Longitude: -118.317},
	{ID: "46253", Name: "San Pedro South, CA", Latitude: 33.576, Longitude: -118.181},
	{ID: "46224", Name: "Oceanside Offshore, CA", Latitude: 33.179, Longitude: -117.472},
	{ID: "46225", Name: "Torrey Pines Outer, CA", Latitude: 32.930, Longitude: -117.391},
	{ID: "46026", Name: "San Francisco, CA", Latitude: 37.754, Longitude: -122.839},
	{ID: "46012", Name: "Half Moon Bay, CA", Latitude: 37.356, Longitude: -122.881},
	{ID: "46042", Name: "Monterey, CA", Latitude: 36.785, Longitude: -122.396},
	{ID: "46050", Name: "Stonewall Bank, OR", Latitude: 44.669, Longitude: -124.546},
	{ID: "46029", Name: "Columbia River Bar, WA", Latitude: 46.159, Longitude: -124.514},
	{ID: "51201", Name: "Waimea Bay, HI", Latitude: 21.671, Longitude: -158.118},
	{ID: "51202", Name: "Mokapu Point, HI", Latitude: 21.414, Longitude: -157.678},
	{ID: "44025", Name: "Long Island, NY", Latitude: 40.251, Longitude: -73.164},
	{ID: "44013", Name: "Boston Approach, MA", Latitude: 42.346, Longitude: -70.651},
	{ID: "41002", Name: "South Hatteras, NC", Latitude: 31.759, Longitude: -74.936},
	{ID: "42036", Name: "West Tampa, FL", Latitude: 28.501, Longitude: -84.508},
}

// StationDirectory serves the buoy station list. An S3-backed durable cache
// lets operations publish an updated directory without a deploy; the bundled
// list is the fallback when neither the in-memory nor the S3 copy is usable.
type StationDirectory struct {
	s3Cache StationListCacheProvider

	mu          sync.RWMutex
	stations    []models.Station
	lastUpdated time.Time
	ttl         time.Duration
}

// NewStationDirectory creates a directory. s3Cache may be nil, in which case
// only the bundled list is used.
func NewStationDirectory(s3Cache StationListCacheProvider, ttl time.Duration) *StationDirectory {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &StationDirectory{
		s3Cache: s3Cache,
		ttl:     ttl,
	}
}

// Stations returns the current station list.
func (d *StationDirectory) Stations(ctx context.Context) ([]models.Station, error) {
	d.mu.RLock()
	if d.stations != nil && time.Since(d.lastUpdated) < d.ttl {
		stations := d.stations
		d.mu.RUnlock()
		return stations, nil
	}
	d.mu.RUnlock()

	stations := d.load(ctx)

	d.mu.Lock()
	d.stations = stations
	d.lastUpdated = time.Now()
	d.mu.Unlock()

	return stations, nil
}

func (d *StationDirectory) load(ctx context.Context) []models.Station {
	if d.s3Cache == nil {
		return defaultStations
	}

	cached, err := d.s3Cache.GetStations(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Reading station directory from S3 failed, using bundled list")
		return defaultStations
	}
	if cached != nil {
		log.Debug().Int("station_count", len(cached)).Msg("Loaded station directory from S3")
		return cached
	}

	// Seed the durable cache so the published copy matches what we serve.
	if err := d.s3Cache.SaveStations(ctx, defaultStations); err != nil {
		log.Warn().Err(err).Msg("Seeding station directory to S3 failed")
	}
	return defaultStations
}
