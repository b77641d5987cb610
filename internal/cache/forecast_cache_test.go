package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellbound/surfcast/internal/config"
	"github.com/swellbound/surfcast/internal/models"
)

// fakeClock implements a mock time source for testing
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newTestForecastCache(t *testing.T, maxAgeSeconds int) (*ForecastCache, *fakeClock) {
	t.Helper()

	cfg := &config.CacheConfig{
		ForecastLRUSize:       10,
		ForecastMaxAgeSeconds: maxAgeSeconds,
		ForecastDynamoTTLDays: 2,
		EnableDynamoCache:     false,
	}

	c, err := NewForecastCache(context.Background(), cfg)
	require.NoError(t, err)

	clk := &fakeClock{now: time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)}
	c.clock = clk
	return c, clk
}

func sampleForecasts() []models.ReconciledForecast {
	return []models.ReconciledForecast{
		{Timestamp: time.Date(2025, 8, 30, 13, 0, 0, 0, time.UTC), WaveHeight: 3.3, Confidence: 100},
	}
}

func TestForecastCacheHitWhileFresh(t *testing.T) {
	c, clk := newTestForecastCache(t, 3600)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "spot-1", sampleForecasts()))

	// One second short of max age is still a hit.
	clk.Advance(3599 * time.Second)
	record, err := c.Get(ctx, "spot-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "spot-1", record.LocationID)
	assert.InDelta(t, 3.3, record.Forecasts[0].WaveHeight, 0.0001)
}

func TestForecastCacheMissAtMaxAge(t *testing.T) {
	c, clk := newTestForecastCache(t, 3600)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "spot-1", sampleForecasts()))

	clk.Advance(3600 * time.Second)
	record, err := c.Get(ctx, "spot-1")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestForecastCacheMissUnknownKey(t *testing.T) {
	c, _ := newTestForecastCache(t, 3600)

	record, err := c.Get(context.Background(), "never-written")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestForecastCachePutOverwrites(t *testing.T) {
	c, clk := newTestForecastCache(t, 3600)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "spot-1", sampleForecasts()))
	clk.Advance(30 * time.Minute)

	updated := sampleForecasts()
	updated[0].WaveHeight = 5.0
	require.NoError(t, c.Put(ctx, "spot-1", updated))

	// The rewrite restarts the freshness window.
	clk.Advance(45 * time.Minute)
	record, err := c.Get(ctx, "spot-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.InDelta(t, 5.0, record.Forecasts[0].WaveHeight, 0.0001)
}

func TestForecastCacheInvalidateAll(t *testing.T) {
	c, _ := newTestForecastCache(t, 3600)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "spot-1", sampleForecasts()))
	require.NoError(t, c.Put(ctx, "spot-2", sampleForecasts()))

	require.NoError(t, c.InvalidateAll(ctx))

	for _, id := range []string{"spot-1", "spot-2"} {
		record, err := c.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, record)
	}
}

func TestForecastCacheSweepEvictsExpired(t *testing.T) {
	c, clk := newTestForecastCache(t, 3600)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "old", sampleForecasts()))
	clk.Advance(2 * time.Hour)
	require.NoError(t, c.Put(ctx, "new", sampleForecasts()))

	c.Sweep()

	assert.False(t, c.lru.Contains("old"))
	assert.True(t, c.lru.Contains("new"))
}

func TestForecastCacheStats(t *testing.T) {
	c, _ := newTestForecastCache(t, 3600)
	ctx := context.Background()

	_, _ = c.Get(ctx, "spot-1") // miss
	require.NoError(t, c.Put(ctx, "spot-1", sampleForecasts()))
	_, _ = c.Get(ctx, "spot-1") // hit

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats["lru_hits"])
	assert.Equal(t, uint64(1), stats["lru_misses"])
	assert.Equal(t, uint64(0), stats["dynamo_hits"])
}
