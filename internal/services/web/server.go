package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/sacredverses/internal/platform/timeouts"
	"github.com/louisbranch/sacredverses/internal/services/web/backend"
	"github.com/louisbranch/sacredverses/internal/services/web/backend/grpcbackend"
	"github.com/louisbranch/sacredverses/internal/services/web/storage/sqlite"
	"github.com/louisbranch/sacredverses/internal/services/web/upload"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr    string
	BackendAddr string
	// CacheDBPath enables the persistent query cache when set.
	CacheDBPath string

	SessionSecret string
	SessionIssuer string
	LoginURL      string

	EnableMCP           bool
	TrustForwardedProto bool
	SecureCookies       bool

	ContentTTL      time.Duration
	DailyVerseTTL   time.Duration
	GRPCDialTimeout time.Duration
	Version         string
}

// Server hosts the web HTTP server and the resources it owns.
type Server struct {
	httpAddr    string
	httpServer  *http.Server
	backendConn *grpc.ClientConn
	cacheStore  *sqlite.Store
	tracker     *upload.Tracker
	logger      *zap.Logger

	pruneStop context.CancelFunc
	pruneDone chan struct{}
}

// NewServer opens the cache store, dials the backend and builds the handler.
// An unhealthy backend is logged and retried in the background by the
// connection; only a malformed address fails startup.
func NewServer(ctx context.Context, cfg Config, logger *zap.Logger) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if cfg.GRPCDialTimeout <= 0 {
		cfg.GRPCDialTimeout = timeouts.GRPCDial
	}

	s := &Server{
		httpAddr: httpAddr,
		tracker:  upload.NewTracker(logger.Named("upload"), 0),
		logger:   logger,
	}

	store, err := openCacheStore(ctx, cfg.CacheDBPath)
	if err != nil {
		return nil, err
	}
	s.cacheStore = store

	conn, err := dialBackend(ctx, cfg.BackendAddr, cfg.GRPCDialTimeout, logger.Named("backend"))
	if err != nil {
		s.Close()
		return nil, err
	}
	s.backendConn = conn

	var client backend.Client
	if conn != nil {
		client = grpcbackend.New(conn)
	} else {
		logger.Warn("backend address not configured; content routes will report unavailable")
	}

	handlerCfg := HandlerConfig{
		Backend:             client,
		Tracker:             s.tracker,
		Logger:              logger,
		SessionSecret:       cfg.SessionSecret,
		SessionIssuer:       cfg.SessionIssuer,
		LoginURL:            cfg.LoginURL,
		TrustForwardedProto: cfg.TrustForwardedProto,
		SecureCookies:       cfg.SecureCookies,
		EnableMCP:           cfg.EnableMCP,
		ContentTTL:          cfg.ContentTTL,
		DailyVerseTTL:       cfg.DailyVerseTTL,
		UploadTimeout:       timeouts.Upload,
		Version:             cfg.Version,
	}
	if store != nil {
		handlerCfg.Store = store
	}
	handler, err := NewHandler(handlerCfg)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("build handler: %w", err)
	}
	s.httpServer = &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	if store != nil {
		s.pruneStop, s.pruneDone = startCachePruneWorker(store, cachePruneInterval, logger.Named("cache"))
	}
	return s, nil
}

// ListenAndServe runs the HTTP server until ctx ends.
//
// On cancellation it performs a bounded shutdown so in-flight requests are
// drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("web listening", zap.String("addr", s.httpAddr))
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops background work, waits for uploads and releases the backend
// connection and cache store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.pruneStop != nil {
		s.pruneStop()
	}
	if s.pruneDone != nil {
		<-s.pruneDone
	}
	if s.tracker != nil {
		s.tracker.Wait()
	}
	if s.backendConn != nil {
		if err := s.backendConn.Close(); err != nil {
			s.logger.Warn("close backend gRPC connection", zap.Error(err))
		}
	}
	if s.cacheStore != nil {
		if err := s.cacheStore.Close(); err != nil {
			s.logger.Warn("close web cache store", zap.Error(err))
		}
	}
}
