package extract

import (
	"sync"
	"time"

	"github.com/fwojciec/storeinsight"
)

// DefaultCacheTTL is how long cached insights stay fresh.
const DefaultCacheTTL = 15 * time.Minute

var _ storeinsight.InsightCache = (*Cache)(nil)

// Cache is an in-memory TTL cache of extraction results keyed by normalized
// website URL. The competitor engine uses it to avoid re-extracting the main
// brand for every analysis.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	insights *storeinsight.StoreInsights
	expires  time.Time
}

// NewCache creates a Cache with the given TTL. A non-positive TTL falls back
// to DefaultCacheTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns fresh cached insights for the URL. Expired entries are evicted
// on access.
func (c *Cache) Get(websiteURL string) (*storeinsight.StoreInsights, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[websiteURL]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, websiteURL)
		return nil, false
	}
	return entry.insights, true
}

// Put stores insights for the URL, replacing any previous entry.
func (c *Cache) Put(websiteURL string, insights *storeinsight.StoreInsights) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[websiteURL] = cacheEntry{
		insights: insights,
		expires:  c.now().Add(c.ttl),
	}
}
