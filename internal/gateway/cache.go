package gateway

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes gateway responses for the lifetime of one process.
// Concurrent fetches of the same key collapse into a single upstream
// call, so twenty keyword checks running in parallel cost one workflow
// listing, not twenty.
type Cache struct {
	data  sync.Map
	group singleflight.Group
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Get(key string) (any, bool) {
	return c.data.Load(key)
}

func (c *Cache) Set(key string, value any) {
	c.data.Store(key, value)
}

// Do returns the cached value for key, or runs fetch exactly once across
// concurrent callers and caches a successful result. Errors are not
// cached; a later caller retries.
func (c *Cache) Do(key string, fetch func() (any, error)) (any, error) {
	if val, ok := c.data.Load(key); ok {
		return val, nil
	}
	val, err, _ := c.group.Do(key, func() (any, error) {
		if val, ok := c.data.Load(key); ok {
			return val, nil
		}
		return fetch()
	})
	if err != nil {
		return nil, err
	}
	c.data.Store(key, val)
	return val, nil
}
