package planner

import (
	"time"

	"github.com/bluele/gcache"

	"github.com/theoremus-urban-solutions/transit-planner/config"
)

// Cache memoises responses per graph version. A refresh bumps the version,
// so entries of an older graph are never served again and simply age out.
type Cache struct {
	planner *RoutePlanner
	cache   gcache.Cache
}

// NewCache wraps a planner with an LRU of the given size and TTL
func NewCache(p *RoutePlanner, size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = config.DefaultCacheSize
	}
	b := gcache.New(size).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &Cache{planner: p, cache: b.Build()}
}

// FindBestRoute serves a cached response when the same query already ran
// on the current graph. The key ignores case, so every hit is a shallow
// copy echoing the caller's own names. Lookup failures are not cached.
func (c *Cache) FindBestRoute(sourceName, destinationName string) (*RouteResponse, error) {
	g, version := c.planner.source.Snapshot()
	key := cacheKey(version, sourceName, destinationName)
	if v, err := c.cache.Get(key); err == nil {
		if resp, ok := v.(*RouteResponse); ok {
			return echo(resp, sourceName, destinationName), nil
		}
	}
	resp, err := c.planner.FindOnGraph(g, sourceName, destinationName)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(key, resp)
	return echo(resp, sourceName, destinationName), nil
}

// echo copies a cached response with the names of the current query. Route
// slices stay shared and must not be modified.
func echo(cached *RouteResponse, sourceName, destinationName string) *RouteResponse {
	out := *cached
	out.Source = sourceName
	out.Destination = destinationName
	if !out.Found() {
		out.Message = noRoutesMessage(sourceName, destinationName)
	}
	return &out
}

// Len returns the number of cached responses, expired ones excluded
func (c *Cache) Len() int {
	return c.cache.Len(true)
}

// Purge drops every cached response
func (c *Cache) Purge() {
	c.cache.Purge()
}
