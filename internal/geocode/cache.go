// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
)

type cacheKey struct {
	Provider string
	Query    string
}

type cacheEntry struct {
	Location Location
	Expiry   time.Time
}

// CachedGeocoder memoizes lookups of another Geocoder. Hits and misses expire after
// separate TTLs.
type CachedGeocoder struct {
	coder   Geocoder
	ttlHit  time.Duration
	ttlMiss time.Duration
	now     func() time.Time

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

func NewCachedGeocoder(coder Geocoder, ttlHit, ttlMiss time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		coder:   coder,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		now:     time.Now,
		cache:   make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedGeocoder) Name() string {
	return "geocoder cache using " + c.coder.Name()
}

func (c *CachedGeocoder) Search(ctx context.Context, query string) (Location, error) {
	key := c.newKey(query)

	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if ok && c.now().Before(entry.Expiry) {
		loc := entry.Location
		loc.CacheHit = true
		return loc, nil
	}

	loc, err := c.coder.Search(ctx, query)
	if err != nil {
		return loc, err
	}

	ttl := c.ttlHit
	if !loc.Found {
		ttl = c.ttlMiss
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{
		Location: loc,
		Expiry:   c.now().Add(ttl),
	}

	return loc, nil
}

func (c *CachedGeocoder) newKey(query string) cacheKey {
	return cacheKey{
		Provider: c.coder.Name(),
		Query:    cases.Fold().String(strings.TrimSpace(query)),
	}
}
