package storage

import (
	"context"
	"time"
)

// CacheEntry stores one cached query payload and its freshness metadata.
type CacheEntry struct {
	CacheKey     string
	Scope        string
	PayloadBytes []byte
	CheckedAt    time.Time
	RefreshedAt  time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the entry should no longer be served at now.
func (e CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// Store is the persistence contract of the second-level query cache.
//
// Keys are slash-separated segment paths; DeleteCacheEntriesWithPrefix
// removes a key and every key nested below it.
type Store interface {
	Close() error
	GetCacheEntry(ctx context.Context, cacheKey string) (CacheEntry, bool, error)
	PutCacheEntry(ctx context.Context, entry CacheEntry) error
	DeleteCacheEntry(ctx context.Context, cacheKey string) error
	DeleteCacheEntriesWithPrefix(ctx context.Context, prefix string) (int64, error)
	PruneExpired(ctx context.Context, now time.Time) (int64, error)
}
