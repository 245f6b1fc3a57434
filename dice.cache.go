package dice

import (
	"sync"
	"time"

	"github.com/itsatony/go-dice/internal"
)

// ExpressionCache caches parsed expressions keyed by their alias-expanded
// text, so repeated rolls of the same notation skip lexing and parsing.
// Parsed trees are immutable and safe to share between rolls.
type ExpressionCache struct {
	mu        sync.RWMutex
	entries   map[string]*expressionCacheEntry
	config    ExpressionCacheConfig
	stats     ExpressionCacheStats
	evictList []string // least recently used first
}

// expressionCacheEntry holds a cached tree with metadata.
type expressionCacheEntry struct {
	Node      internal.Node
	CreatedAt time.Time
	ExpiresAt time.Time
	HitCount  int
}

// ExpressionCacheConfig configures the expression cache.
type ExpressionCacheConfig struct {
	// TTL is how long trees are cached. Default: 10 minutes.
	TTL time.Duration

	// MaxEntries is the maximum number of cached trees. Default: 1000.
	MaxEntries int
}

// ExpressionCacheStats tracks cache performance metrics.
type ExpressionCacheStats struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	EntryCount int
}

// DefaultExpressionCacheConfig returns the default cache configuration.
func DefaultExpressionCacheConfig() ExpressionCacheConfig {
	return ExpressionCacheConfig{
		TTL:        DefaultCacheTTL,
		MaxEntries: DefaultCacheMaxEntries,
	}
}

// NewExpressionCache creates a new expression cache.
func NewExpressionCache(config ExpressionCacheConfig) *ExpressionCache {
	if config.TTL <= 0 {
		config.TTL = DefaultCacheTTL
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultCacheMaxEntries
	}

	return &ExpressionCache{
		entries:   make(map[string]*expressionCacheEntry),
		config:    config,
		evictList: make([]string, 0, config.MaxEntries),
	}
}

// get retrieves a cached tree if available and not expired.
func (c *ExpressionCache) get(key string) (internal.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.stats.Misses++
		return nil, false
	}

	if timeNow().After(entry.ExpiresAt) {
		c.remove(key)
		c.stats.Misses++
		return nil, false
	}

	entry.HitCount++
	c.stats.Hits++
	c.touch(key)
	return entry.Node, true
}

// set stores a tree in the cache.
func (c *ExpressionCache) set(key string, node internal.Node) {
	now := timeNow()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.remove(key)
	}
	if len(c.entries) >= c.config.MaxEntries {
		c.evictOldest()
	}

	c.entries[key] = &expressionCacheEntry{
		Node:      node,
		CreatedAt: now,
		ExpiresAt: now.Add(c.config.TTL),
	}
	c.evictList = append(c.evictList, key)
	c.stats.EntryCount = len(c.entries)
}

// Contains reports whether an unexpired tree is cached for the expression.
// It does not count as a hit or miss.
func (c *ExpressionCache) Contains(expanded string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[expanded]
	return exists && !timeNow().After(entry.ExpiresAt)
}

// Invalidate removes a specific cache entry.
func (c *ExpressionCache) Invalidate(expanded string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(expanded)
}

// Clear removes all entries from the cache.
func (c *ExpressionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*expressionCacheEntry)
	c.evictList = make([]string, 0, c.config.MaxEntries)
	c.stats.EntryCount = 0
}

// Stats returns current cache statistics.
func (c *ExpressionCache) Stats() ExpressionCacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (c *ExpressionCache) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.stats.Hits + c.stats.Misses
	if total == 0 {
		return 0
	}
	return float64(c.stats.Hits) / float64(total)
}

// Cleanup removes expired entries. Call periodically for long-running applications.
func (c *ExpressionCache) Cleanup() int {
	now := timeNow()
	removed := 0

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			c.remove(key)
			removed++
		}
	}
	return removed
}

// remove deletes an entry and its eviction slot. Caller holds the lock.
func (c *ExpressionCache) remove(key string) {
	if _, exists := c.entries[key]; !exists {
		return
	}
	delete(c.entries, key)
	c.dropFromEvictList(key)
	c.stats.EntryCount = len(c.entries)
}

// touch marks a key as most recently used. Caller holds the lock.
func (c *ExpressionCache) touch(key string) {
	c.dropFromEvictList(key)
	c.evictList = append(c.evictList, key)
}

func (c *ExpressionCache) dropFromEvictList(key string) {
	for i, k := range c.evictList {
		if k == key {
			c.evictList = append(c.evictList[:i], c.evictList[i+1:]...)
			return
		}
	}
}

// evictOldest removes the least recently used entry.
func (c *ExpressionCache) evictOldest() {
	if len(c.evictList) == 0 {
		return
	}

	oldestKey := c.evictList[0]
	c.evictList = c.evictList[1:]

	if _, exists := c.entries[oldestKey]; exists {
		delete(c.entries, oldestKey)
		c.stats.Evictions++
		c.stats.EntryCount = len(c.entries)
	}
}
