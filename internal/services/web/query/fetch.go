package query

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Codec serializes query results for the persistent store.
type Codec[T any] interface {
	Marshal(T) ([]byte, error)
	Unmarshal([]byte) (T, error)
}

// Query describes one cacheable read.
type Query[T any] struct {
	Key Key
	// StaleTime is how long a result is served without refetching. Zero
	// or negative means every call refetches, still de-duplicated.
	StaleTime time.Duration
	// NoRetry disables the client's default retry policy.
	NoRetry bool
	// Codec persists results to the client's store when set.
	Codec Codec[T]
	Fetch func(ctx context.Context) (T, error)
}

func (q Query[T]) scope() string {
	if len(q.Key) == 0 {
		return ""
	}
	return q.Key[0]
}

// Peek returns a fresh cached result without fetching.
func Peek[T any](c *Client, q Query[T]) (T, bool) {
	var zero T
	value, ok := c.cached(q.Key, q.StaleTime)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}

// Fetch returns the cached result of q or runs q.Fetch, sharing one call
// between concurrent callers of the same key.
//
// The shared call is detached from ctx and bounded by the client's fetch
// timeout; when ctx ends first the caller stops waiting and gets ctx.Err()
// while other callers still receive the result.
func Fetch[T any](ctx context.Context, c *Client, q Query[T]) (T, error) {
	var zero T
	if len(q.Key) == 0 || q.Fetch == nil {
		return zero, fmt.Errorf("query key and fetch func are required")
	}
	ks := q.Key.String()
	ctx, span := c.tracer.Start(ctx, "query.fetch", trace.WithAttributes(attribute.String("query.key", ks)))
	defer span.End()

	if value, ok := Peek(c, q); ok {
		span.SetAttributes(attribute.String("query.source", "memory"))
		return value, nil
	}
	gen := c.generation(q.Key)
	if value, ok := loadPersisted(ctx, c, q, gen); ok {
		span.SetAttributes(attribute.String("query.source", "store"))
		return value, nil
	}

	ch := c.group.DoChan(ks+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		value, err := fetchWithRetry(fetchCtx, c, q)
		if err != nil {
			return nil, err
		}
		fetchedAt := c.now()
		if c.remember(q.Key, gen, value, fetchedAt, q.StaleTime) {
			persist(fetchCtx, c, q, value, fetchedAt)
		} else {
			c.logger.Debug("discarded result of invalidated query", zap.String("key", ks))
		}
		return value, nil
	})

	select {
	case res := <-ch:
		span.SetAttributes(attribute.String("query.source", "backend"), attribute.Bool("query.shared", res.Shared))
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
			return zero, res.Err
		}
		value, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("query %s: unexpected result type %T", ks, res.Val)
		}
		return value, nil
	case <-ctx.Done():
		span.SetStatus(codes.Error, "caller stopped waiting")
		return zero, ctx.Err()
	}
}

// Refresh invalidates q's key and fetches it again.
func Refresh[T any](ctx context.Context, c *Client, q Query[T]) (T, error) {
	c.Invalidate(ctx, q.Key)
	return Fetch(ctx, c, q)
}

func fetchWithRetry[T any](ctx context.Context, c *Client, q Query[T]) (T, error) {
	if q.NoRetry || c.retries == 0 {
		return q.Fetch(ctx)
	}
	operation := func() (T, error) {
		value, err := q.Fetch(ctx)
		if err != nil && !retryable(err) {
			return value, backoff.Permanent(err)
		}
		return value, err
	}
	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(uint(c.retries+1)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.logger.Debug("retrying query", zap.String("key", q.Key.String()), zap.Duration("wait", wait), zap.Error(err))
		}),
	)
}

// retryable limits retries to transport failures.
func retryable(err error) bool {
	switch apperrors.KindOf(err) {
	case apperrors.KindUnavailable, apperrors.KindUnknown:
		return true
	default:
		return false
	}
}

func loadPersisted[T any](ctx context.Context, c *Client, q Query[T], gen uint64) (T, bool) {
	var zero T
	if c.store == nil || q.Codec == nil {
		return zero, false
	}
	ks := q.Key.String()
	entry, ok, err := c.store.GetCacheEntry(ctx, ks)
	if err != nil {
		c.logger.Warn("read persisted cache entry", zap.String("key", ks), zap.Error(err))
		return zero, false
	}
	if !ok || entry.Expired(c.now()) {
		return zero, false
	}
	value, err := q.Codec.Unmarshal(entry.PayloadBytes)
	if err != nil {
		c.logger.Warn("decode persisted cache entry", zap.String("key", ks), zap.Error(err))
		_ = c.store.DeleteCacheEntry(ctx, ks)
		return zero, false
	}
	if !c.remember(q.Key, gen, value, entry.RefreshedAt, q.StaleTime) {
		return zero, false
	}
	return value, true
}

func persist[T any](ctx context.Context, c *Client, q Query[T], value T, fetchedAt time.Time) {
	if c.store == nil || q.Codec == nil || q.StaleTime <= 0 {
		return
	}
	payload, err := q.Codec.Marshal(value)
	if err != nil {
		c.logger.Warn("encode cache entry", zap.String("key", q.Key.String()), zap.Error(err))
		return
	}
	if len(payload) == 0 {
		return
	}
	err = c.store.PutCacheEntry(ctx, storage.CacheEntry{
		CacheKey:     q.Key.String(),
		Scope:        q.scope(),
		PayloadBytes: payload,
		CheckedAt:    fetchedAt.UTC(),
		RefreshedAt:  fetchedAt.UTC(),
		ExpiresAt:    fetchedAt.UTC().Add(q.StaleTime),
	})
	if err != nil {
		c.logger.Warn("write cache entry", zap.String("key", q.Key.String()), zap.Error(err))
	}
}
