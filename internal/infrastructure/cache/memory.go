package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tableorder/backend/internal/domain"
)

// cacheEntry holds a cached menu payload with its creation time and TTL
type cacheEntry struct {
	items     []domain.MenuItem
	createdAt time.Time
	ttl       time.Duration
}

// MemoryCache is a thread-safe in-memory menu cache with TTL support.
// Expired entries are evicted lazily on the read path; there is no background
// sweeper.
type MemoryCache struct {
	data  map[string]cacheEntry
	mutex sync.Mutex
	now   func() time.Time
}

// NewMemoryCache creates a new in-memory menu cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]cacheEntry),
		now:  time.Now,
	}
}

// Get retrieves a cached menu. An entry is valid while its age does not exceed
// its TTL; an expired entry is deleted and reported as a miss.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]domain.MenuItem, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if c.now().Sub(entry.createdAt) > entry.ttl {
		delete(c.data, key)
		return nil, domain.ErrCacheMiss
	}

	// Returned as-is; cached payloads are treated as immutable.
	return entry.items, nil
}

// Set stores a menu payload, overwriting any existing entry for the key
func (c *MemoryCache) Set(ctx context.Context, key string, items []domain.MenuItem, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheEntry{
		items:     items,
		createdAt: c.now(),
		ttl:       ttl,
	}

	return nil
}

// Delete removes an entry from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Size returns the current number of entries in the cache, including entries
// that have expired but not yet been evicted (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.data)
}

// Clear removes all entries from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheEntry)
}
