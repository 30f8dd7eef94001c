// Package cache keeps formatted chain reads for a short TTL so repeated UI
// polling does not hit the access node.
package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const AllLeaguesKey = "all_leagues"

func LeagueKey(id uint64) string {
	return fmt.Sprintf("league_%d", id)
}

type Cache struct {
	items *gocache.Cache
}

// New creates a cache whose entries expire after ttl. Expired items are
// purged every 2*ttl.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Cache{items: gocache.New(ttl, 2*ttl)}
}

func (c *Cache) Get(key string) (any, bool) {
	return c.items.Get(key)
}

func (c *Cache) Set(key string, v any) {
	c.items.Set(key, v, gocache.DefaultExpiration)
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.items.Flush()
}

func (c *Cache) Len() int {
	return c.items.ItemCount()
}
