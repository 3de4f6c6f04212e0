package iconbadge

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// OutlineCache memoizes the outlines provided by a source for the lifetime of the cache.
// Outlines are assumed immutable, so there is no invalidation: the first successful
// fetch wins. Failures are not cached. Concurrent requests for the same name
// are collapsed into a single fetch. The shared fetch is detached from the cancellation of
// the caller which started it; each caller stops waiting when its own context is done.
type OutlineCache struct {
	src    OutlineSource
	group  singleflight.Group
	mu     sync.RWMutex
	items  map[string]string
	frozen bool
}

// NewOutlineCache returns an empty cache in front of the source.
func NewOutlineCache(src OutlineSource) *OutlineCache {
	return &OutlineCache{
		src:   src,
		items: make(map[string]string),
	}
}

// Outline implements OutlineSource.
func (c *OutlineCache) Outline(ctx context.Context, name string) (string, error) {
	c.mu.RLock()
	text, ok := c.items[name]
	frozen := c.frozen
	c.mu.RUnlock()

	if ok {
		Logger().Debug("outline cache hit", "name", name)
		return text, nil
	}
	if frozen || c.src == nil {
		return "", fmt.Errorf("%w: %s: not cached", ErrOutlineUnavailable, name)
	}

	ch := c.group.DoChan(name, func() (interface{}, error) {
		text, err := c.src.Outline(context.WithoutCancel(ctx), name)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		if prev, ok := c.items[name]; ok {
			text = prev
		} else {
			c.items[name] = text
		}
		c.mu.Unlock()

		Logger().Debug("outline fetched", "name", name, "bytes", len(text))
		return text, nil
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %s: %w", ErrOutlineUnavailable, name, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Put stores an outline under the name, unless one is already cached.
func (c *OutlineCache) Put(name, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[name]; !ok {
		c.items[name] = text
	}
}

// Freeze stops the cache from fetching: only the outlines already cached are served.
func (c *OutlineCache) Freeze() {
	c.mu.Lock()
	c.frozen = true
	c.mu.Unlock()
}

// Len returns the number of cached outlines.
func (c *OutlineCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
