package catalog

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// routeCache memoizes which zone origin answers a query name.
type routeCache interface {
	Get(qname string) (string, bool)
	Put(qname, origin string)
	Len() int
	Stats() (hits, misses, evictions uint64)
}

// lruRoutes is an LRU-backed routeCache. It tracks hits, misses and evictions.
type lruRoutes struct {
	lru       *lru.Cache[string, string]
	hits      uint64
	misses    uint64
	evictions uint64
}

// disabledRoutes always misses; used when size <= 0.
type disabledRoutes struct{}

func newRouteCache(size int) (routeCache, error) {
	if size <= 0 {
		return &disabledRoutes{}, nil
	}

	var rc lruRoutes
	cache, err := lru.NewWithEvict(size, func(_ string, _ string) {
		atomic.AddUint64(&rc.evictions, 1)
	})
	if err != nil {
		return nil, err
	}
	rc.lru = cache
	return &rc, nil
}

func (c *lruRoutes) Get(qname string) (string, bool) {
	if origin, ok := c.lru.Get(qname); ok {
		atomic.AddUint64(&c.hits, 1)
		return origin, true
	}
	atomic.AddUint64(&c.misses, 1)
	return "", false
}

func (c *lruRoutes) Put(qname, origin string) { c.lru.Add(qname, origin) }

func (c *lruRoutes) Len() int { return c.lru.Len() }

func (c *lruRoutes) Stats() (hits, misses, evictions uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses), atomic.LoadUint64(&c.evictions)
}

func (d *disabledRoutes) Get(string) (string, bool)               { return "", false }
func (d *disabledRoutes) Put(string, string)                      {}
func (d *disabledRoutes) Len() int                                { return 0 }
func (d *disabledRoutes) Stats() (hits, misses, evictions uint64) { return 0, 0, 0 }
