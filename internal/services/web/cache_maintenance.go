package web

import (
	"context"
	"time"

	webstorage "github.com/louisbranch/sacredverses/internal/services/web/storage"
	"go.uber.org/zap"
)

const cachePruneInterval = 10 * time.Minute

// startCachePruneWorker periodically deletes expired persistent cache
// entries. It returns nil handles when there is no store.
func startCachePruneWorker(store webstorage.Store, interval time.Duration, logger *zap.Logger) (context.CancelFunc, chan struct{}) {
	if store == nil {
		return nil, nil
	}
	if interval <= 0 {
		interval = cachePruneInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		runCachePruneLoop(ctx, store, interval, time.Now, logger)
	}()
	return cancel, done
}

func runCachePruneLoop(ctx context.Context, store webstorage.Store, interval time.Duration, now func() time.Time, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		pruneCache(ctx, store, now(), logger)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func pruneCache(ctx context.Context, store webstorage.Store, now time.Time, logger *zap.Logger) {
	removed, err := store.PruneExpired(ctx, now)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("prune web cache", zap.Error(err))
		}
		return
	}
	if removed > 0 {
		logger.Debug("pruned web cache", zap.Int64("removed", removed))
	}
}
