package estimate

import (
	"sync"
	"time"

	"github.com/Veraticus/metalcycle/internal/model"
)

// DefaultCacheTTL is used when an Estimator is built without a TTL.
const DefaultCacheTTL = 15 * time.Minute

// predictionKey identifies one prediction. ScenarioInput is comparable, so
// the whole argument list can key the map.
type predictionKey struct {
	material model.Material
	stage    model.Stage
	metric   model.Metric
	scenario model.ScenarioInput
}

// cacheEntry represents a cached prediction.
type cacheEntry struct {
	expiry time.Time
	value  float64
}

// predictionCache provides thread-safe memoisation of predictions.
type predictionCache struct {
	entries map[predictionKey]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
	once    sync.Once
}

// newPredictionCache creates a new cache with the specified TTL.
func newPredictionCache(ttl time.Duration) *predictionCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	cache := &predictionCache{
		entries: make(map[predictionKey]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// get retrieves a prediction if it exists and hasn't expired.
func (c *predictionCache) get(key predictionKey) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return 0, false
	}

	if time.Now().After(entry.expiry) {
		return 0, false
	}

	return entry.value, true
}

// set stores a prediction in the cache.
func (c *predictionCache) set(key predictionKey, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:  value,
		expiry: time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *predictionCache) cleanup() {
	interval := c.ttl / 3
	if interval > 5*time.Minute {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// clear removes all entries from the cache.
func (c *predictionCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[predictionKey]cacheEntry)
}

// size returns the number of entries in the cache.
func (c *predictionCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// close stops the cleanup goroutine. It is safe to call more than once.
func (c *predictionCache) close() {
	c.once.Do(func() { close(c.stopCh) })
}
