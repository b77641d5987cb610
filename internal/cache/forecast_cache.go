package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/config"
	"github.com/swellbound/surfcast/internal/models"
	"github.com/swellbound/surfcast/internal/observability/metrics"
)

// ForecastProvider is the cache contract the forecast and alert layers use.
type ForecastProvider interface {
	Get(ctx context.Context, locationID string) (*models.ForecastRecord, error)
	Put(ctx context.Context, locationID string, forecasts []models.ReconciledForecast) error
	InvalidateAll(ctx context.Context) error
	Stats() map[string]uint64
}

// ForecastCache is a two-tier, per-location cache of reconciled forecasts:
// an in-process LRU in front of a DynamoDB table. A read is a hit only while
// now - writtenAt < maxAge; expired entries are treated as misses and left
// for the sweep (LRU) or the table TTL (DynamoDB) to collect.
type ForecastCache struct {
	lru       *lru.Cache[string, *models.ForecastRecord]
	dynamo    *DynamoForecastCache
	maxAge    time.Duration
	dynamoTTL time.Duration
	clock     clock

	lruHits      atomic.Uint64
	lruMisses    atomic.Uint64
	dynamoHits   atomic.Uint64
	dynamoMisses atomic.Uint64
}

// NewForecastCache creates the two-tier cache. With EnableDynamoCache off the
// cache runs LRU-only, which is what tests and the local CLI use.
func NewForecastCache(ctx context.Context, cfg *config.CacheConfig) (*ForecastCache, error) {
	if cfg == nil {
		cfg = config.GetCacheConfig()
	}

	lruCache, err := lru.New[string, *models.ForecastRecord](cfg.ForecastLRUSize)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	var dynamoCache *DynamoForecastCache
	if cfg.EnableDynamoCache {
		dynamoClient, err := NewDynamoClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating DynamoDB client: %w", err)
		}
		dynamoCache = NewDynamoForecastCache(dynamoClient)
	}

	return &ForecastCache{
		lru:       lruCache,
		dynamo:    dynamoCache,
		maxAge:    cfg.GetForecastMaxAge(),
		dynamoTTL: cfg.GetDynamoTTL(),
		clock:     systemClock{},
	}, nil
}

// Get returns the cached record for a location, or nil on a miss. Expiry is
// checked at read time against maxAge for both tiers.
func (c *ForecastCache) Get(ctx context.Context, locationID string) (*models.ForecastRecord, error) {
	if record, ok := c.lru.Get(locationID); ok {
		if c.isFresh(record) {
			c.lruHits.Add(1)
			metrics.CacheLookup("lru", "hit")
			return record, nil
		}
		c.lru.Remove(locationID)
	}
	c.lruMisses.Add(1)
	metrics.CacheLookup("lru", "miss")

	if c.dynamo == nil {
		return nil, nil
	}

	record, err := c.dynamo.Get(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("getting forecast from durable cache: %w", err)
	}

	if record != nil && c.isFresh(record) {
		c.dynamoHits.Add(1)
		metrics.CacheLookup("dynamo", "hit")
		c.lru.Add(locationID, record)
		return record, nil
	}
	c.dynamoMisses.Add(1)
	metrics.CacheLookup("dynamo", "miss")

	return nil, nil
}

// Put stores a freshly reconciled series, stamping writtenAt now. The LRU
// entry is swapped as a whole pointer so concurrent readers of the same
// location see either the old or the new record, never a mix.
func (c *ForecastCache) Put(ctx context.Context, locationID string, forecasts []models.ReconciledForecast) error {
	now := c.clock.Now()
	record := &models.ForecastRecord{
		LocationID: locationID,
		Forecasts:  forecasts,
		WrittenAt:  now.Unix(),
		TTL:        now.Add(c.dynamoTTL).Unix(),
	}

	c.lru.Add(locationID, record)

	if c.dynamo != nil {
		if err := c.dynamo.Save(ctx, *record); err != nil {
			return fmt.Errorf("saving forecast to durable cache: %w", err)
		}
	}

	return nil
}

// InvalidateAll removes every entry immediately. This is the hard delete
// used for logout and test reset, distinct from lazy expiry.
func (c *ForecastCache) InvalidateAll(ctx context.Context) error {
	c.lru.Purge()
	if c.dynamo != nil {
		if err := c.dynamo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("invalidating durable cache: %w", err)
		}
	}
	return nil
}

// Sweep proactively evicts expired LRU entries. Correctness never depends on
// it; Get's age check already treats expired entries as misses.
func (c *ForecastCache) Sweep() {
	evicted := 0
	for _, key := range c.lru.Keys() {
		if record, ok := c.lru.Peek(key); ok && !c.isFresh(record) {
			c.lru.Remove(key)
			evicted++
		}
	}
	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Msg("Forecast cache sweep complete")
	}
}

// StartSweeper runs Sweep on the given interval until ctx is done.
func (c *ForecastCache) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}

// Stats returns cache hit and miss counts per tier.
func (c *ForecastCache) Stats() map[string]uint64 {
	return map[string]uint64{
		"lru_hits":      c.lruHits.Load(),
		"lru_misses":    c.lruMisses.Load(),
		"dynamo_hits":   c.dynamoHits.Load(),
		"dynamo_misses": c.dynamoMisses.Load(),
	}
}

func (c *ForecastCache) isFresh(record *models.ForecastRecord) bool {
	age := c.clock.Now().Sub(time.Unix(record.WrittenAt, 0))
	return age < c.maxAge
}
