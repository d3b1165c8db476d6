package anchorstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/spardeck/marine-measure/internal/water"
)

// Cached wraps an AnchorSource with a per-medium TTL cache. Anchor
// tables change only when an administrator reseeds the store, so a
// short TTL keeps property lookups off the database without hiding new
// seeds for long.
type Cached struct {
	inner water.AnchorSource
	ttl   time.Duration

	mu      sync.Mutex
	entries map[water.Medium]cacheEntry
}

type cacheEntry struct {
	points    []water.AnchorPoint
	fetchedAt time.Time
}

var _ water.AnchorSource = (*Cached)(nil)

// NewCached creates a cache decorator around source.
func NewCached(source water.AnchorSource, ttl time.Duration) *Cached {
	return &Cached{
		inner:   source,
		ttl:     ttl,
		entries: make(map[water.Medium]cacheEntry),
	}
}

func (c *Cached) FetchAnchorPoints(ctx context.Context, medium water.Medium) ([]water.AnchorPoint, error) {
	if points, ok := c.get(medium); ok {
		return points, nil
	}

	points, err := c.inner.FetchAnchorPoints(ctx, medium)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty tables so a store seeded later is picked up
	// on the next lookup.
	if len(points) > 0 {
		c.put(medium, points)
	}
	return points, nil
}

func (c *Cached) get(medium water.Medium) ([]water.AnchorPoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[medium]
	if !ok {
		return nil, false
	}
	if clock.Now().Sub(e.fetchedAt) > c.ttl {
		delete(c.entries, medium)
		return nil, false
	}
	return slices.Clone(e.points), true
}

func (c *Cached) put(medium water.Medium, points []water.AnchorPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[medium] = cacheEntry{
		points:    slices.Clone(points),
		fetchedAt: clock.Now(),
	}
}
