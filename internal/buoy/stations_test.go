package buoy

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellbound/surfcast/internal/models"
)

type fakeStationListCache struct {
	stations []models.Station
	getErr   error
	saved    [][]models.Station
}

func (f *fakeStationListCache) GetStations(_ context.Context) ([]models.Station, error) {
	return f.stations, f.getErr
}

func (f *fakeStationListCache) SaveStations(_ context.Context, stations []models.Station) error {
	f.saved = append(f.saved, stations)
	return nil
}

func TestStationDirectoryBundledList(t *testing.T) {
	directory := NewStationDirectory(nil, time.Hour)

	stations, err := directory.Stations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultStations, stations)
}

func TestStationDirectoryUsesS3Copy(t *testing.T) {
	published := []models.Station{{ID: "custom", Latitude: 1, Longitude: 2}}
	s3Cache := &fakeStationListCache{stations: published}
	directory := NewStationDirectory(s3Cache, time.Hour)

	stations, err := directory.Stations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, published, stations)
	assert.Empty(t, s3Cache.saved)
}

func TestStationDirectorySeedsS3OnMiss(t *testing.T) {
	s3Cache := &fakeStationListCache{}
	directory := NewStationDirectory(s3Cache, time.Hour)

	stations, err := directory.Stations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultStations, stations)
	require.Len(t, s3Cache.saved, 1)
	assert.Equal(t, defaultStations, s3Cache.saved[0])
}

func TestStationDirectoryFallsBackOnS3Error(t *testing.T) {
	s3Cache := &fakeStationListCache{getErr: fmt.Errorf("access denied")}
	directory := NewStationDirectory(s3Cache, time.Hour)

	stations, err := directory.Stations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultStations, stations)
}

func TestStationDirectoryMemoizes(t *testing.T) {
	s3Cache := &fakeStationListCache{stations: []models.Station{{ID: "one"}}}
	directory := NewStationDirectory(s3Cache, time.Hour)

	first, err := directory.Stations(context.Background())
	require.NoError(t, err)

	// A new S3 copy does not show up until the in-memory TTL lapses.
	s3Cache.stations = []models.Station{{ID: "two"}}
	second, err := directory.Stations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
