package external

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// defaultMaxEntries bounds the number of cities kept per cache.
const defaultMaxEntries = 256

// FetchFunc loads the value for a key from upstream. The returned time is
// the expiry hint for the result (the provider's rate-limit reset); a zero
// or past hint makes the result uncacheable. The error, when non-nil, is
// cached alongside the hint so a failed lookup is not hammered upstream
// within its validity window.
type FetchFunc[T any] func(ctx context.Context, key string) (T, time.Time, error)

type cacheEntry[T any] struct {
	value     T
	err       error
	expiresAt time.Time
}

// QueryCache is a time-boxed, size-bounded lookup cache keyed by city name.
// Each entry holds either a successful response or a recorded failure, with
// a lifetime derived from the provider's expiry hint capped by maxLife.
// Concurrent callers for the same key share a single upstream fetch via
// singleflight; reads within the validity window only take the read lock.
type QueryCache[T any] struct {
	name    string
	fetch   FetchFunc[T]
	maxLife time.Duration
	maxSize int
	now     func() time.Time
	logger  *slog.Logger

	mu      sync.RWMutex
	entries map[string]cacheEntry[T]
	group   singleflight.Group
}

// QueryCacheOption is a functional option for configuring a QueryCache.
type QueryCacheOption[T any] func(*QueryCache[T])

// WithCacheClock overrides the cache clock. Intended for tests.
func WithCacheClock[T any](now func() time.Time) QueryCacheOption[T] {
	return func(c *QueryCache[T]) { c.now = now }
}

// WithMaxEntries overrides the entry-count bound.
func WithMaxEntries[T any](n int) QueryCacheOption[T] {
	return func(c *QueryCache[T]) { c.maxSize = n }
}

// NewQueryCache creates a QueryCache. maxLife caps the lifetime of every
// entry regardless of the provider's expiry hint; zero means the hint is
// used as-is.
func NewQueryCache[T any](
	name string,
	fetch FetchFunc[T],
	maxLife time.Duration,
	logger *slog.Logger,
	opts ...QueryCacheOption[T],
) *QueryCache[T] {
	if logger == nil {
		logger = slog.Default()
	}
	c := &QueryCache[T]{
		name:    name,
		fetch:   fetch,
		maxLife: maxLife,
		maxSize: defaultMaxEntries,
		now:     time.Now,
		logger:  logger,
		entries: make(map[string]cacheEntry[T]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached outcome for key, fetching from upstream when no
// valid entry exists. At most one upstream fetch per key is in flight at a
// time; callers arriving during a fetch share its outcome.
func (c *QueryCache[T]) Get(ctx context.Context, key string) (T, error) {
	if entry, ok := c.lookup(key); ok {
		c.logger.Debug("cache hit", "cache", c.name, "key", key)
		return entry.value, entry.err
	}
	c.logger.Debug("cache miss", "cache", c.name, "key", key)

	// The closure never returns an error: fetch failures are recorded inside
	// the entry so they are shared with waiting callers and cached like
	// successes.
	v, _, _ := c.group.Do(key, func() (any, error) {
		// A concurrent caller may have filled the entry while this one was
		// waiting on the flight group.
		if entry, ok := c.lookup(key); ok {
			return entry, nil
		}

		value, expiryHint, err := c.fetch(ctx, key)
		entry := cacheEntry[T]{
			value:     value,
			err:       err,
			expiresAt: c.expiry(expiryHint),
		}
		if entry.expiresAt.After(c.now()) {
			c.store(key, entry)
		}
		return entry, nil
	})

	entry := v.(cacheEntry[T])
	return entry.value, entry.err
}

// lookup returns the entry for key if it exists and is still valid.
func (c *QueryCache[T]) lookup(key string) (cacheEntry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.expiresAt) {
		return cacheEntry[T]{}, false
	}
	return entry, true
}

// store inserts an entry, evicting expired entries first and then the
// soonest-expiring entry if the cache is still at its size bound.
func (c *QueryCache[T]) store(key string, entry cacheEntry[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		now := c.now()
		for k, e := range c.entries {
			if !now.Before(e.expiresAt) {
				delete(c.entries, k)
			}
		}
	}
	if len(c.entries) >= c.maxSize {
		var victim string
		var soonest time.Time
		for k, e := range c.entries {
			if victim == "" || e.expiresAt.Before(soonest) {
				victim = k
				soonest = e.expiresAt
			}
		}
		delete(c.entries, victim)
	}

	c.entries[key] = entry
}

// expiry converts the provider expiry hint into an absolute entry deadline,
// capped at now+maxLife. A zero or past hint yields a deadline in the past,
// marking the result uncacheable.
func (c *QueryCache[T]) expiry(hint time.Time) time.Time {
	now := c.now()
	if hint.IsZero() || !hint.After(now) {
		return now
	}
	if c.maxLife > 0 {
		if limit := now.Add(c.maxLife); hint.After(limit) {
			return limit
		}
	}
	return hint
}

// Len reports the number of stored entries, valid or expired.
func (c *QueryCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
