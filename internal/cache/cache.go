// Package cache keeps decoded feed entries in memory between scans so
// repeated runs within the TTL do not hit the network. Nothing survives
// the process.
package cache

import (
	"sync"
	"time"

	"mentionwatch/internal/feed"
)

type item struct {
	entries   []feed.Entry
	expiresAt time.Time
}

// Cache is a TTL cache of decoded entries keyed by feed URL.
type Cache struct {
	mu    sync.RWMutex
	items map[string]item
}

func New() *Cache {
	c := &Cache{
		items: make(map[string]item),
	}

	// Cleanup expired items every hour
	go c.cleanupLoop()

	return c
}

func (c *Cache) Set(feedURL string, entries []feed.Entry, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[feedURL] = item{
		entries:   entries,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *Cache) Get(feedURL string) ([]feed.Entry, bool) {
	c.mu.RLock()
	it, exists := c.items[feedURL]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if time.Now().After(it.expiresAt) {
		c.mu.Lock()
		delete(c.items, feedURL)
		c.mu.Unlock()
		return nil, false
	}
	return it.entries, true
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, it := range c.items {
		if now.After(it.expiresAt) {
			delete(c.items, key)
		}
	}
}
