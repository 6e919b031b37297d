package settings

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL bounds staleness after a missed invalidation.
const DefaultTTL = 60 * time.Second

// Cache holds decoded setting values with a fixed TTL. One instance is
// constructed per process and owned by the Service; writes to any
// setting drop the whole cache rather than a single key, since the key
// space is tiny and settings are read far more often than written.
type Cache struct {
	ttl time.Duration
	c   *gocache.Cache
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl, c: gocache.New(ttl, 2*ttl)}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.c.Get(key)
}

func (c *Cache) Put(key string, v interface{}) {
	c.c.Set(key, v, c.ttl)
}

// InvalidateAll unconditionally empties the cache. Called once per
// successful settings write, single or bulk.
func (c *Cache) InvalidateAll() {
	c.c.Flush()
}
