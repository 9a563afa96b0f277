// Package cache implements the keyed response cache used by the client for
// deterministic, non-streaming requests. Entries expire lazily on read
// against a configurable TTL; a sweep operation exists for callers that
// want to reclaim memory proactively.
package cache

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/alphadose/haxmap"
)

// DefaultTTL is the entry lifetime applied when none is configured.
const DefaultTTL = 5 * time.Minute

type entry struct {
	body       string
	insertedAt time.Time
}

// Stats is a point-in-time snapshot of cache effectiveness counters.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

// Cache is a concurrent-safe TTL store of response bodies keyed by request
// fingerprint. The zero value is not usable; construct with New.
type Cache struct {
	entries *haxmap.Map[string, entry]
	ttl     time.Duration

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache with the given TTL. A non-positive TTL falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: haxmap.New[string, entry](),
		ttl:     ttl,
	}
}

// Get returns the cached body for key if present and not expired. Expired
// entries are removed on read and counted as misses.
func (c *Cache) Get(key string) (string, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		c.misses.Add(1)
		return "", false
	}
	if time.Since(e.insertedAt) > c.ttl {
		c.entries.Del(key)
		c.misses.Add(1)
		return "", false
	}
	c.hits.Add(1)
	return e.body, true
}

// Set stores body under key with the current time as insertion timestamp.
func (c *Cache) Set(key, body string) {
	c.entries.Set(key, entry{body: body, insertedAt: time.Now()})
}

// Clear removes every entry. Hit and miss counters are preserved.
func (c *Cache) Clear() {
	c.entries.ForEach(func(key string, _ entry) bool {
		c.entries.Del(key)
		return true
	})
}

// InvalidateBySubstring removes every entry whose key contains sub and
// returns the number removed.
func (c *Cache) InvalidateBySubstring(sub string) int {
	var removed int
	c.entries.ForEach(func(key string, _ entry) bool {
		if strings.Contains(key, sub) {
			c.entries.Del(key)
			removed++
		}
		return true
	})
	return removed
}

// SweepExpired removes every expired entry and returns the number removed.
func (c *Cache) SweepExpired() int {
	var removed int
	now := time.Now()
	c.entries.ForEach(func(key string, e entry) bool {
		if now.Sub(e.insertedAt) > c.ttl {
			c.entries.Del(key)
			removed++
		}
		return true
	})
	return removed
}

// Stats returns current counters and entry count.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: int(c.entries.Len()),
	}
}
