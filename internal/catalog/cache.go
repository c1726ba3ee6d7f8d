package catalog

import (
	"context"
	"strings"
	"sync"
)

// SearchFunc fetches raw records for a trimmed, non-cached query.
type SearchFunc[R any] func(ctx context.Context, query string) ([]R, error)

// Cache memoizes search-text -> result-list mappings for one collection.
// Entries never expire and are never evicted within the cache's lifetime.
// One instance per collection; instances are discarded on logout.
//
// There is no in-flight deduplication: two rapid queries for the same
// uncached text may both reach the network, and the last one to resolve
// owns the displayed list. Callers bound the call volume by debouncing.
type Cache[R, T any] struct {
	search    SearchFunc[R]
	transform func(R) T

	mu        sync.RWMutex
	memo      map[string][]T
	displayed []T
	loading   bool
	lastError string
	seeded    bool
}

// Snapshot is what presentation renders: the current list plus the
// in-flight flag and the last failure message.
type Snapshot[T any] struct {
	Records []T
	Loading bool
	Error   string
}

func NewCache[R, T any](search SearchFunc[R], transform func(R) T) *Cache[R, T] {
	return &Cache[R, T]{
		search:    search,
		transform: transform,
		memo:      make(map[string][]T),
	}
}

// Seed stores the server-provided initial page under the empty-string
// key and as the displayed list. Must run before any Query; calls after
// the first are ignored.
func (c *Cache[R, T]) Seed(records []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seeded {
		return
	}
	c.seeded = true
	c.memo[""] = records
	c.displayed = records
}

// Query answers from the memo when it can; otherwise it hits the search
// endpoint, transforms, and memoizes. A memo hit replaces the displayed
// list synchronously with no loading flicker. A failure records the
// message and keeps the previously displayed list (last-good policy).
func (c *Cache[R, T]) Query(ctx context.Context, text string) {
	trimmed := strings.TrimSpace(text)

	c.mu.Lock()
	if cached, ok := c.memo[trimmed]; ok {
		c.displayed = cached
		c.loading = false
		c.lastError = ""
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.lastError = ""
	c.mu.Unlock()

	raw, err := c.search(ctx, trimmed)
	if err != nil {
		c.mu.Lock()
		c.lastError = err.Error()
		c.loading = false
		c.mu.Unlock()
		return
	}

	records := make([]T, 0, len(raw))
	for _, r := range raw {
		records = append(records, c.transform(r))
	}

	c.mu.Lock()
	c.memo[trimmed] = records
	c.displayed = records
	c.loading = false
	c.mu.Unlock()
}

func (c *Cache[R, T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	records := make([]T, len(c.displayed))
	copy(records, c.displayed)
	return Snapshot[T]{
		Records: records,
		Loading: c.loading,
		Error:   c.lastError,
	}
}
