// Package query is the shared cached-fetch primitive behind every page read.
//
// Each query is identified by a Key. Concurrent fetches of the same key share
// one backend call, results are served from memory until they go stale or
// are invalidated, and mutations invalidate dependent keys by prefix once
// they succeed. Invalidation bumps the generation of every matching key so a
// fetch that started earlier cannot repopulate the cache with data from
// before the mutation.
//
// Queries that carry a Codec are also written to an optional persistent
// store and survive process restarts.
package query

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/louisbranch/sacredverses/internal/platform/timeouts"
	"github.com/louisbranch/sacredverses/internal/services/web/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	tracerName = "github.com/louisbranch/sacredverses/internal/services/web/query"

	// DefaultRetries is how many times a failing query is retried unless it
	// opts out with NoRetry.
	DefaultRetries = 3

	// DefaultGCTime is how long an unused slot without a fresh value is kept.
	DefaultGCTime = 5 * time.Minute
)

// Client owns the in-memory cache, de-duplication and invalidation state.
type Client struct {
	mu        sync.Mutex
	slots     map[string]*slot
	genSeq    uint64
	lastSweep time.Time
	group     singleflight.Group

	store        storage.Store
	now          func() time.Time
	retries      int
	newBackOff   func() backoff.BackOff
	fetchTimeout time.Duration
	gcTime       time.Duration
	logger       *zap.Logger
	tracer       trace.Tracer
	onInvalidate func(Key)
}

type slot struct {
	key        Key
	gen        uint64
	value      any
	has        bool
	fetchedAt  time.Time
	staleUntil time.Time
	touchedAt  time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithStore enables the persistent second-level cache.
func WithStore(store storage.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithClock overrides the time source used for staleness.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRetry sets the default retry count and backoff policy.
func WithRetry(retries int, newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		c.retries = max(retries, 0)
		if newBackOff != nil {
			c.newBackOff = newBackOff
		}
	}
}

// WithFetchTimeout bounds each shared backend call.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.fetchTimeout = timeout
		}
	}
}

// WithGCTime sets how long an unused slot outlives its fresh value.
func WithGCTime(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.gcTime = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer overrides the tracer used for fetch and mutation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithInvalidateHook registers fn to observe every prefix invalidation.
func WithInvalidateHook(fn func(Key)) Option {
	return func(c *Client) {
		c.onInvalidate = fn
	}
}

// NewClient builds a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		slots:        map[string]*slot{},
		now:          time.Now,
		retries:      DefaultRetries,
		newBackOff:   defaultBackOff,
		fetchTimeout: timeouts.BackendRequest,
		gcTime:       DefaultGCTime,
		logger:       zap.NewNop(),
		tracer:       otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	return b
}

// slotFor returns the slot of key, creating it on first use. Callers hold mu.
//
// Generations come from one client-wide sequence, so a slot that was
// collected and recreated never reuses a generation an older fetch holds.
func (c *Client) slotFor(key Key, now time.Time) *slot {
	ks := key.String()
	s, ok := c.slots[ks]
	if !ok {
		c.sweep(now)
		c.genSeq++
		s = &slot{key: append(Key(nil), key...), gen: c.genSeq}
		c.slots[ks] = s
	}
	s.touchedAt = now
	return s
}

// sweep drops slots that hold no fresh value and were not used for gcTime.
// It scans at most once per gcTime. Callers hold mu.
func (c *Client) sweep(now time.Time) int {
	if now.Sub(c.lastSweep) < c.gcTime {
		return 0
	}
	c.lastSweep = now
	removed := 0
	for ks, s := range c.slots {
		if s.has && now.Before(s.staleUntil) {
			continue
		}
		if now.Sub(s.touchedAt) < c.gcTime {
			continue
		}
		delete(c.slots, ks)
		removed++
	}
	return removed
}

func (c *Client) generation(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slotFor(key, c.now()).gen
}

func (c *Client) cached(key Key, staleTime time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[key.String()]
	if !ok || !s.has || staleTime <= 0 {
		return nil, false
	}
	now := c.now()
	if now.Sub(s.fetchedAt) >= staleTime {
		s.value = nil
		s.has = false
		return nil, false
	}
	s.touchedAt = now
	return s.value, true
}

// remember stores value unless key was invalidated after gen was read.
func (c *Client) remember(key Key, gen uint64, value any, fetchedAt time.Time, staleTime time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.slotFor(key, c.now())
	if s.gen != gen {
		return false
	}
	s.value = value
	s.has = true
	s.fetchedAt = fetchedAt
	s.staleUntil = fetchedAt.Add(staleTime)
	return true
}

// Invalidate drops every cached key that starts with prefix, in memory and
// in the persistent store, and voids fetches already in flight for them.
func (c *Client) Invalidate(ctx context.Context, prefix Key) {
	if len(prefix) == 0 {
		return
	}
	c.mu.Lock()
	dropped := 0
	for _, s := range c.slots {
		if !s.key.HasPrefix(prefix) {
			continue
		}
		c.genSeq++
		s.gen = c.genSeq
		s.value = nil
		s.has = false
		dropped++
	}
	hook := c.onInvalidate
	c.mu.Unlock()

	if c.store != nil {
		if _, err := c.store.DeleteCacheEntriesWithPrefix(ctx, prefix.String()); err != nil {
			c.logger.Warn("delete persisted cache entries", zap.String("prefix", prefix.String()), zap.Error(err))
		}
	}
	c.logger.Debug("query cache invalidated", zap.String("prefix", prefix.String()), zap.Int("keys", dropped))
	if hook != nil {
		hook(prefix)
	}
}
