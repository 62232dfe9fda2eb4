package web

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	platformgrpc "github.com/louisbranch/sacredverses/internal/platform/grpc"
	"github.com/louisbranch/sacredverses/internal/services/web/storage/sqlite"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// openCacheStore opens the persistent query cache. An empty path disables it.
func openCacheStore(ctx context.Context, path string) (*sqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create web cache dir: %w", err)
		}
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open web cache sqlite store: %w", err)
	}
	return store, nil
}

// dialBackend connects to the content backend. An empty address returns a
// nil connection. A failed health check keeps the connection, which goes on
// reconnecting in the background.
func dialBackend(ctx context.Context, addr string, timeout time.Duration, logger *zap.Logger) (*grpc.ClientConn, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, nil
	}
	conn, err := platformgrpc.Connect(ctx, addr, timeout, logger, platformgrpc.DefaultClientDialOptions()...)
	if err == nil {
		return conn, nil
	}
	var dialErr *platformgrpc.DialError
	if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageHealth && conn != nil {
		logger.Warn("backend health check failed; continuing degraded",
			zap.String("addr", addr),
			zap.Error(dialErr.Err),
		)
		return conn, nil
	}
	return nil, fmt.Errorf("dial backend gRPC %s: %w", addr, err)
}
