// Package querycache is the client-side query cache: keyed entries with a
// stale flag, partial-key invalidation, refetch of subscribed queries and
// request coalescing per key.
package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"wbsplanner/pkg/metrics"
)

// Fetcher loads the data behind a key.
type Fetcher func(ctx context.Context) (any, error)

// Listener receives the result of every fetch of a subscribed key.
type Listener func(data any, err error)

type entry struct {
	data      any
	err       error
	hasData   bool
	stale     bool
	gen       uint64
	fetchedAt time.Time
	fetch     Fetcher
	listeners map[int]Listener
}

type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	nextID  int
	group   singleflight.Group

	staleTime  time.Duration
	retries    int
	retryDelay time.Duration
	retryIf    func(error) bool
	logger     *zap.Logger
	now        func() time.Time
}

type Option func(*Cache)

// WithStaleTime marks entries stale after d. Zero keeps them fresh until invalidated.
func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) { c.staleTime = d }
}

// WithRetry sets how many times a failed fetch is retried and the pause between tries.
func WithRetry(retries int, delay time.Duration) Option {
	return func(c *Cache) {
		c.retries = retries
		c.retryDelay = delay
	}
}

// WithRetryIf limits retries to errors for which fn returns true.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *Cache) { c.retryIf = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// New returns an empty cache. Reads retry once after one second by default.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[Key]*entry),
		retries:    1,
		retryDelay: time.Second,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Cache) entry(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{listeners: make(map[int]Listener)}
		c.entries[key] = e
	}
	return e
}

func (c *Cache) fresh(e *entry) bool {
	if !e.hasData || e.stale {
		return false
	}
	return c.staleTime == 0 || c.now().Sub(e.fetchedAt) < c.staleTime
}

// Fetch returns cached data for key, calling fetch when the entry is missing or stale.
// Concurrent callers for one key share a single fetch.
func (c *Cache) Fetch(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	c.mu.Lock()
	e := c.entry(key)
	e.fetch = fetch
	if c.fresh(e) {
		data := e.data
		c.mu.Unlock()
		metrics.RecordCacheLookup("query", "hit")
		return data, nil
	}
	c.mu.Unlock()
	metrics.RecordCacheLookup("query", "miss")
	return c.load(ctx, key, fetch)
}

// load runs fetch through the per-key singleflight, stores the result and
// notifies listeners. A result from a fetch that started before the last
// invalidation of key is handed back to its callers but not stored.
func (c *Cache) load(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		c.mu.Lock()
		gen := c.entry(key).gen
		c.mu.Unlock()

		data, err := c.fetchWithRetry(ctx, key, fetch)

		c.mu.Lock()
		e := c.entry(key)
		if e.gen != gen {
			c.mu.Unlock()
			c.logger.Debug("Dropped outdated query result", zap.String("key", key.String()))
			return data, err
		}
		if err == nil {
			e.data = data
			e.hasData = true
			e.stale = false
			e.fetchedAt = c.now()
		}
		e.err = err
		listeners := make([]Listener, 0, len(e.listeners))
		for _, l := range e.listeners {
			listeners = append(listeners, l)
		}
		c.mu.Unlock()

		for _, l := range listeners {
			l(data, err)
		}
		return data, err
	})
	return v, err
}

func (c *Cache) fetchWithRetry(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	var err error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			if c.retryIf != nil && !c.retryIf(err) {
				break
			}
			c.logger.Debug("Retrying query", zap.String("key", key.String()), zap.Int("attempt", attempt), zap.Error(err))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
		var data any
		data, err = fetch(ctx)
		if err == nil {
			return data, nil
		}
	}
	c.logger.Warn("Query failed", zap.String("key", key.String()), zap.Error(err))
	return nil, err
}

// Subscribe marks key as mounted: invalidations refetch it and deliver the
// result to l. The returned func unsubscribes.
func (c *Cache) Subscribe(key Key, fetch Fetcher, l Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	e.fetch = fetch
	c.nextID++
	id := c.nextID
	e.listeners[id] = l

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if e, ok := c.entries[key]; ok {
			delete(e.listeners, id)
		}
	}
}

// Invalidate marks every entry under the partial key p stale and refetches
// the ones with subscribers. It returns the number of entries marked.
func (c *Cache) Invalidate(ctx context.Context, p Key) int {
	type refetch struct {
		key   Key
		fetch Fetcher
	}

	c.mu.Lock()
	var (
		marked int
		active []refetch
	)
	for k, e := range c.entries {
		if !k.Matches(p) {
			continue
		}
		e.stale = true
		e.gen++
		marked++
		if len(e.listeners) > 0 && e.fetch != nil {
			active = append(active, refetch{key: k, fetch: e.fetch})
		}
	}
	c.mu.Unlock()

	metrics.RecordQueryInvalidation(p.Resource, marked)
	c.logger.Debug("Invalidated queries",
		zap.String("key", p.String()),
		zap.Int("marked", marked),
		zap.Int("refetch", len(active)),
	)

	for _, r := range active {
		// a flight already running holds pre-write data
		c.group.Forget(r.key.String())
		// errors reach the listeners
		_, _ = c.load(ctx, r.key, r.fetch)
	}
	return marked
}

// InvalidateAll runs Invalidate for each key.
func (c *Cache) InvalidateAll(ctx context.Context, keys ...Key) int {
	n := 0
	for _, k := range keys {
		n += c.Invalidate(ctx, k)
	}
	return n
}

// State reports whether key has data and whether it is stale.
func (c *Cache) State(key Key) (hasData, stale bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return false, false
	}
	return e.hasData, e.stale
}

// Active reports whether key has at least one subscriber.
func (c *Cache) Active(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && len(e.listeners) > 0
}

// Query is the typed form of Cache.Fetch.
func Query[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, Typed(fetch))
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: cached %T, want %T", key, v, zero)
	}
	return t, nil
}

// Typed adapts a typed fetch function to a Fetcher.
func Typed[T any](fetch func(context.Context) (T, error)) Fetcher {
	return func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}
}
