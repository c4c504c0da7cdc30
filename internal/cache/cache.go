// Package cache provides the bounded in-memory TTL cache used for
// extraction responses.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value    any
	inserted time.Time
}

// Cache is a bounded key/value store with per-entry expiry. Entries past
// their TTL are invisible to Get; inserting past the size cap evicts the
// single oldest entry. Safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// New creates a Cache holding at most maxEntries live entries for ttl.
// maxEntries <= 0 disables the size cap. now may be nil to use the wall
// clock; tests inject a fake.
func New(maxEntries int, ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        now,
	}
}

// Key derives the cache key for a text and its selected types: md5 over
// the text concatenated with the sorted type list.
func Key(text string, types []string) string {
	sorted := make([]string, len(types))
	copy(sorted, types)
	sort.Strings(sorted)
	sum := md5.Sum([]byte(text + strings.Join(sorted, ",")))
	return hex.EncodeToString(sum[:])
}

// Get returns the live value stored under key. Expired entries are removed
// on sight.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.inserted) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Put stores value under key, refreshing its insertion time, then evicts
// the oldest entry if the cap is exceeded.
func (c *Cache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, inserted: c.now()}
	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		c.evictOldest()
	}
}

// evictOldest removes the entry with the earliest insertion time. The
// caller holds the lock.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	first := true
	for k, e := range c.entries {
		if first || e.inserted.Before(oldest) {
			oldestKey, oldest = k, e.inserted
			first = false
		}
	}
	delete(c.entries, oldestKey)
}

// Len reports the number of stored entries, including expired entries that
// have not been touched since expiry.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
