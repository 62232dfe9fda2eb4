package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/sacredverses/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/louisbranch/sacredverses/internal/services/web/storage"
	"github.com/louisbranch/sacredverses/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists query cache entries in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ webstorage.Store = (*Store)(nil)

// Open opens path and applies the embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready() error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// GetCacheEntry loads one entry by key.
func (s *Store) GetCacheEntry(ctx context.Context, cacheKey string) (webstorage.CacheEntry, bool, error) {
	if err := s.ready(); err != nil {
		return webstorage.CacheEntry{}, false, err
	}
	cacheKey = strings.TrimSpace(cacheKey)
	if cacheKey == "" {
		return webstorage.CacheEntry{}, false, fmt.Errorf("cache key is required")
	}

	var (
		entry                            webstorage.CacheEntry
		checkedAt, refreshedAt, expireAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT cache_key, scope, payload, checked_at, refreshed_at, expires_at
		 FROM cache_entries
		 WHERE cache_key = ?`,
		cacheKey,
	).Scan(&entry.CacheKey, &entry.Scope, &entry.PayloadBytes, &checkedAt, &refreshedAt, &expireAt)
	if errors.Is(err, sql.ErrNoRows) {
		return webstorage.CacheEntry{}, false, nil
	}
	if err != nil {
		return webstorage.CacheEntry{}, false, fmt.Errorf("get cache entry: %w", err)
	}
	entry.CheckedAt = fromMillis(checkedAt)
	entry.RefreshedAt = fromMillis(refreshedAt)
	entry.ExpiresAt = fromMillis(expireAt)
	return entry, true, nil
}

// PutCacheEntry upserts entry by key.
func (s *Store) PutCacheEntry(ctx context.Context, entry webstorage.CacheEntry) error {
	if err := s.ready(); err != nil {
		return err
	}
	entry.CacheKey = strings.TrimSpace(entry.CacheKey)
	if entry.CacheKey == "" {
		return fmt.Errorf("cache key is required")
	}
	entry.Scope = strings.TrimSpace(entry.Scope)
	if entry.Scope == "" {
		return fmt.Errorf("cache scope is required")
	}
	if len(entry.PayloadBytes) == 0 {
		return fmt.Errorf("cache payload is required")
	}
	if entry.CheckedAt.IsZero() {
		entry.CheckedAt = s.now().UTC()
	}
	if entry.RefreshedAt.IsZero() {
		entry.RefreshedAt = entry.CheckedAt
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO cache_entries (cache_key, scope, payload, checked_at, refreshed_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		    scope = excluded.scope,
		    payload = excluded.payload,
		    checked_at = excluded.checked_at,
		    refreshed_at = excluded.refreshed_at,
		    expires_at = excluded.expires_at`,
		entry.CacheKey,
		entry.Scope,
		entry.PayloadBytes,
		toMillis(entry.CheckedAt),
		toMillis(entry.RefreshedAt),
		toMillis(entry.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}

// DeleteCacheEntry removes one entry by key.
func (s *Store) DeleteCacheEntry(ctx context.Context, cacheKey string) error {
	if err := s.ready(); err != nil {
		return err
	}
	cacheKey = strings.TrimSpace(cacheKey)
	if cacheKey == "" {
		return fmt.Errorf("cache key is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_key = ?`, cacheKey); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// DeleteCacheEntriesWithPrefix removes prefix itself and every key below it.
func (s *Store) DeleteCacheEntriesWithPrefix(ctx context.Context, prefix string) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return 0, fmt.Errorf("cache key prefix is required")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE cache_key = ? OR cache_key LIKE ? ESCAPE '\'`,
		prefix, escapeLike(prefix)+"/%",
	)
	if err != nil {
		return 0, fmt.Errorf("delete cache prefix: %w", err)
	}
	return res.RowsAffected()
}

// PruneExpired deletes entries whose expiry has passed.
func (s *Store) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	if now.IsZero() {
		now = s.now()
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE expires_at > 0 AND expires_at <= ?`,
		toMillis(now),
	)
	if err != nil {
		return 0, fmt.Errorf("prune cache entries: %w", err)
	}
	return res.RowsAffected()
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

func toMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}
