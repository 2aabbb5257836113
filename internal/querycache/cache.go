package querycache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"skillswap-cli/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads fresh data for a key.
type FetchFunc func(ctx context.Context) (any, error)

// MutateFunc performs a write against the API.
type MutateFunc func(ctx context.Context) (any, error)

// Options are the cache policy knobs.
type Options struct {
	// StaleAfter is how long a successful result is served without refetch.
	StaleAfter time.Duration
	// EvictAfter is how long an untouched entry survives before the
	// janitor drops it.
	EvictAfter time.Duration
	// RetryCount bounds retries of transient failures. Fixed backoff.
	RetryCount   int
	RetryBackoff time.Duration
	// Retryable decides whether an error is transient. Nil disables retry.
	Retryable func(error) bool
}

type entry struct {
	data      any
	fetchedAt time.Time
	lastUsed  time.Time
	stale     bool
}

// Cache is a keyed query cache sitting between the UI layer and the HTTP
// client. Concurrent reads of one key are coalesced into a single in-flight
// call; writes go out strictly in call order and invalidate their dependent
// keys before the write is reported complete. The keyed store is the only
// shared mutable state in the client and is touched exclusively through
// Fetch, Mutate and Invalidate.
type Cache struct {
	opts    Options
	mu      sync.Mutex
	entries map[string]*entry
	flight  singleflight.Group

	// gen counts invalidations per key. A fetch records the generation
	// before it starts; a mismatch at install time means a write
	// invalidated the key mid-flight, and the result lands stale.
	gen map[string]uint64

	// mutateMu serializes writes so they are never reordered.
	mutateMu sync.Mutex

	stop     chan struct{}
	stopOnce sync.Once
}

// New builds a Cache and starts its eviction janitor.
func New(opts Options) *Cache {
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = time.Minute
	}
	if opts.EvictAfter < opts.StaleAfter {
		opts.EvictAfter = 5 * opts.StaleAfter
	}
	c := &Cache{
		opts:    opts,
		entries: make(map[string]*entry),
		gen:     make(map[string]uint64),
		stop:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Close stops the eviction janitor.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Key derives a stable cache key from a resource name and its parameters.
func Key(resource string, params any) string {
	if params == nil {
		return resource
	}
	b, _ := json.Marshal(params)
	sum := sha256.Sum256(b)
	return resource + ":" + hex.EncodeToString(sum[:8])
}

// Fetch returns the cached value for key, fetching through fn when the entry
// is missing or stale. Duplicate concurrent fetches for one key share a
// single in-flight call. Cancelling ctx abandons the wait but never the
// underlying call; its result still lands in the cache for the next reader.
func (c *Cache) Fetch(ctx context.Context, key string, fn FetchFunc) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.stale && time.Since(e.fetchedAt) < c.opts.StaleAfter {
		e.lastUsed = time.Now()
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	if _, ok := c.gen[key]; !ok {
		c.gen[key] = 0
	}
	start := c.gen[key]
	c.mu.Unlock()

	ch := c.flight.DoChan(key, func() (any, error) {
		// The flight outlives any single caller.
		data, err := c.fetchWithRetry(context.WithoutCancel(ctx), key, fn)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		c.mu.Lock()
		// A write that invalidated the key while this fetch was in
		// flight wins; the fetch may have read pre-write data, so its
		// result lands stale and the next read refetches.
		stale := c.gen[key] != start
		c.entries[key] = &entry{data: data, fetchedAt: now, lastUsed: now, stale: stale}
		c.mu.Unlock()
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (c *Cache) fetchWithRetry(ctx context.Context, key string, fn FetchFunc) (any, error) {
	var lastErr error
	attempts := 1 + c.opts.RetryCount
	for i := 0; i < attempts; i++ {
		if i > 0 {
			logger.Debug("Retrying fetch for %s (attempt %d/%d)", key, i+1, attempts)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.opts.RetryBackoff):
			}
		}
		data, err := fn(ctx)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if c.opts.Retryable == nil || !c.opts.Retryable(err) {
			break
		}
	}
	return nil, fmt.Errorf("fetch %s failed: %w", key, lastErr)
}

// Mutate runs a write. Writes are issued strictly in call order, and the
// named keys are invalidated before Mutate returns, so no dependent read can
// resolve from the cache the write made stale.
func (c *Cache) Mutate(ctx context.Context, fn MutateFunc, invalidate ...string) (any, error) {
	c.mutateMu.Lock()
	defer c.mutateMu.Unlock()

	result, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	c.Invalidate(invalidate...)
	return result, nil
}

// Invalidate marks keys stale so their next read refetches. A key ending in
// "*" is a prefix pattern and matches every key underneath it.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		if prefix, ok := strings.CutSuffix(key, "*"); ok {
			for k, e := range c.entries {
				if strings.HasPrefix(k, prefix) {
					e.stale = true
				}
			}
			for k := range c.gen {
				if strings.HasPrefix(k, prefix) {
					c.gen[k]++
				}
			}
			continue
		}
		if e, ok := c.entries[key]; ok {
			e.stale = true
		}
		c.gen[key]++
	}
}

// Refresh forces a refetch of key regardless of freshness. This is the
// explicit analogue of refetch-on-focus/reconnect.
func (c *Cache) Refresh(ctx context.Context, key string, fn FetchFunc) (any, error) {
	c.Invalidate(key)
	return c.Fetch(ctx, key, fn)
}

// Clear drops every entry. In-flight fetches land stale.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	for k := range c.gen {
		c.gen[k]++
	}
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) janitor() {
	interval := c.opts.EvictAfter / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evict(time.Now())
		}
	}
}

func (c *Cache) evict(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if now.Sub(e.lastUsed) > c.opts.EvictAfter {
			delete(c.entries, key)
			delete(c.gen, key)
		}
	}
}

// Get is a typed convenience wrapper over Fetch.
func Get[T any](ctx context.Context, c *Cache, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %s holds %T", key, v)
	}
	return t, nil
}
