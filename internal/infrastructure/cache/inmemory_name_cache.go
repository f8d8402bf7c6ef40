package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/khata/backend/internal/domain/partner"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryNameCache implements NameCache in process memory
type InMemoryNameCache struct {
	entries sync.Map // map[string]nameEntry
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type nameEntry struct {
	name      string
	expiresAt time.Time
}

func (e nameEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// NewInMemoryNameCache creates the cache and starts its cleanup loop
func NewInMemoryNameCache() *InMemoryNameCache {
	c := &InMemoryNameCache{stopCh: make(chan struct{})}
	go c.cleanupExpired(defaultCleanupInterval)
	return c
}

// Get returns the cached name of an entity
func (c *InMemoryNameCache) Get(_ context.Context, role partner.Role, id int64) (string, bool, error) {
	key := nameKey(role, id)
	if v, ok := c.entries.Load(key); ok {
		entry := v.(nameEntry)
		if !entry.isExpired(time.Now()) {
			atomic.AddInt64(&c.hits, 1)
			return entry.name, true, nil
		}
		c.entries.Delete(key)
	}
	atomic.AddInt64(&c.misses, 1)
	return "", false, nil
}

// Set stores the name of an entity
func (c *InMemoryNameCache) Set(_ context.Context, role partner.Role, id int64, name string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultNameTTL
	}
	c.entries.Store(nameKey(role, id), nameEntry{name: name, expiresAt: time.Now().Add(ttl)})
	return nil
}

// Invalidate drops the cached name of an entity
func (c *InMemoryNameCache) Invalidate(_ context.Context, role partner.Role, id int64) error {
	c.entries.Delete(nameKey(role, id))
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryNameCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Close stops the cleanup loop. Safe to call more than once.
func (c *InMemoryNameCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

func (c *InMemoryNameCache) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case now := <-ticker.C:
			c.entries.Range(func(k, v any) bool {
				if v.(nameEntry).isExpired(now) {
					c.entries.Delete(k)
				}
				return true
			})
		}
	}
}

var _ NameCache = (*InMemoryNameCache)(nil)
