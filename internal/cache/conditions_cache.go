package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/swellbound/surfcast/internal/config"
	"github.com/swellbound/surfcast/internal/models"
)

type conditionsEntry struct {
	conditions *models.CurrentConditions
	expiresAt  time.Time
}

// ConditionsCache is a short-TTL cache of current-conditions snapshots so
// that several alert rules on the same spot share one upstream fetch within
// an evaluation cycle. The underlying LRU is internally synchronized.
type ConditionsCache struct {
	lru   *lru.Cache[string, *conditionsEntry]
	ttl   time.Duration
	clock clock
}

func NewConditionsCache(cfg *config.CacheConfig) (*ConditionsCache, error) {
	if cfg == nil {
		cfg = config.GetCacheConfig()
	}

	lruCache, err := lru.New[string, *conditionsEntry](cfg.ConditionsLRUSize)
	if err != nil {
		return nil, err
	}

	return &ConditionsCache{
		lru:   lruCache,
		ttl:   cfg.GetConditionsTTL(),
		clock: systemClock{},
	}, nil
}

func (c *ConditionsCache) Add(locationID string, conditions *models.CurrentConditions) {
	c.lru.Add(locationID, &conditionsEntry{
		conditions: conditions,
		expiresAt:  c.clock.Now().Add(c.ttl),
	})
}

func (c *ConditionsCache) Get(locationID string) (*models.CurrentConditions, bool) {
	entry, ok := c.lru.Get(locationID)
	if !ok {
		return nil, false
	}

	if c.clock.Now().After(entry.expiresAt) {
		c.lru.Remove(locationID)
		return nil, false
	}

	return entry.conditions, true
}

// Purge drops all cached snapshots.
func (c *ConditionsCache) Purge() {
	c.lru.Purge()
}
