package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process ResultCache. Entries live until TTL
// expiry, or forever when TTL is zero. There is no background sweeper;
// expired entries are dropped lazily on read.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates an in-process cache with the given TTL.
// ttl=0 disables expiry.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func cacheKey(region, key string) string {
	return region + ":" + key
}

// Get returns the cached value and whether it was present.
func (c *MemoryCache) Get(_ context.Context, region, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey(region, key)]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, cacheKey(region, key))
		c.mu.Unlock()
		return nil, false, nil
	}

	return entry.value, true, nil
}

// Set stores a value under region+key.
func (c *MemoryCache) Set(_ context.Context, region, key string, value []byte) error {
	entry := memoryEntry{value: value}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[cacheKey(region, key)] = entry
	c.mu.Unlock()
	return nil
}

// Close releases the cache contents.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
