package cache

import (
	"context"
	"sync"
	"time"

	"go-viewer-dashboard/internal/model"
)

type memoryEntry struct {
	report  *model.Report
	expires time.Time
}

// MemoryCache is an in-process ReportCache. A zero TTL keeps entries forever.
type MemoryCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]memoryEntry
}

// NewMemoryCache creates in-process report cache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now, items: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*model.Report, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && c.now().After(e.expires) {
		delete(c.items, key)
		return nil, false, nil
	}
	return e.report, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, report *model.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := memoryEntry{report: report}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}
	c.items[key] = e
	return nil
}

// Len reports the number of live and expired entries held.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
