// Package catalog maps zone origins to the authorities answering for them and
// assembles that mapping from the zone configuration.
package catalog

import (
	"sort"

	"github.com/miekg/dns"

	"github.com/haukened/simple-dns/internal/dns/common/utils"
	"github.com/haukened/simple-dns/internal/dns/gateways/authority"
)

// Catalog is an immutable mapping from zone origin to Authority.
// It is safe for concurrent use; only the route memo changes after construction.
type Catalog struct {
	authorities map[string]authority.Authority
	origins     []string
	routes      routeCache
}

func newCatalog(authorities map[string]authority.Authority, routeCacheSize int) (*Catalog, error) {
	routes, err := newRouteCache(routeCacheSize)
	if err != nil {
		return nil, err
	}
	origins := make([]string, 0, len(authorities))
	for origin := range authorities {
		origins = append(origins, origin)
	}
	sort.Strings(origins)
	return &Catalog{authorities: authorities, origins: origins, routes: routes}, nil
}

// Get returns the authority registered for exactly origin.
func (c *Catalog) Get(origin string) (authority.Authority, bool) {
	a, ok := c.authorities[dns.CanonicalName(origin)]
	return a, ok
}

// Find returns the authority whose origin is the longest suffix of qname.
// With the root forwarder present every name has an authority.
func (c *Catalog) Find(qname string) (authority.Authority, bool) {
	qname = dns.CanonicalName(qname)
	if origin, ok := c.routes.Get(qname); ok {
		return c.authorities[origin], true
	}

	for name := qname; ; {
		if a, ok := c.authorities[name]; ok {
			c.routes.Put(qname, name)
			return a, true
		}
		if name == "." {
			return nil, false
		}
		name = utils.ParentName(name)
	}
}

// Origins returns every origin in lexicographic order.
func (c *Catalog) Origins() []string {
	return append([]string(nil), c.origins...)
}

// Len returns the number of entries, including the root forwarder.
func (c *Catalog) Len() int { return len(c.authorities) }

// RouteStats returns cumulative route memo hit, miss and eviction counters.
func (c *Catalog) RouteStats() (hits, misses, evictions uint64) {
	return c.routes.Stats()
}
