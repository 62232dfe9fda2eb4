package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/louisbranch/sacredverses/internal/services/shared/route"
	"github.com/louisbranch/sacredverses/internal/services/web/backend"
	"github.com/louisbranch/sacredverses/internal/services/web/composition"
	"github.com/louisbranch/sacredverses/internal/services/web/data"
	"github.com/louisbranch/sacredverses/internal/services/web/modules"
	"github.com/louisbranch/sacredverses/internal/services/web/modules/publicauth"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/httpx"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/pagerender"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/session"
	"github.com/louisbranch/sacredverses/internal/services/web/query"
	"github.com/louisbranch/sacredverses/internal/services/web/storage"
	"github.com/louisbranch/sacredverses/internal/services/web/upload"
	"go.uber.org/zap"
)

// HandlerConfig carries everything NewHandler wires together.
type HandlerConfig struct {
	// Backend serves content; nil behaves as unavailable.
	Backend backend.Client
	// Store persists the query cache; nil keeps it in memory only.
	Store   storage.Store
	Tracker *upload.Tracker
	Logger  *zap.Logger
	Clock   func() time.Time

	SessionSecret       string
	SessionIssuer       string
	LoginURL            string
	TrustForwardedProto bool
	SecureCookies       bool
	EnableMCP           bool

	ContentTTL    time.Duration
	DailyVerseTTL time.Duration
	UploadTimeout time.Duration
	Version       string
}

// NewHandler builds the root HTTP handler with every module mounted behind
// the shared middleware chain.
func NewHandler(cfg HandlerConfig) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}

	queryOpts := []query.Option{
		query.WithLogger(logger.Named("query")),
		query.WithClock(cfg.Clock),
	}
	if cfg.Store != nil {
		queryOpts = append(queryOpts, query.WithStore(cfg.Store))
	}
	hooks := data.New(query.NewClient(queryOpts...), cfg.Backend,
		data.WithContentStaleTime(cfg.ContentTTL),
		data.WithDailyVerseStaleTime(cfg.DailyVerseTTL),
	)

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionIssuer,
		session.WithClock(cfg.Clock),
		session.WithSchemePolicy(policy),
		session.WithLogger(logger.Named("session")),
	)
	viewers := newViewerResolver(hooks, logger.Named("viewer"))
	renderer := pagerender.New(pagerender.ChromeFunc(viewers.resolveChrome),
		pagerender.WithClock(cfg.Clock),
		pagerender.WithSchemePolicy(policy),
	)
	base := modulehandler.NewBase(renderer)

	tracker := cfg.Tracker
	if tracker == nil {
		tracker = upload.NewTracker(logger.Named("upload"), 0)
	}

	app, err := composition.ComposeAppHandler(composition.ComposeInput{
		Authenticated: func(r *http.Request) bool {
			return !session.CallerFromRequest(r).IsAnonymous()
		},
		ModuleDependencies: modules.Dependencies{
			Hooks:    hooks,
			Base:     base,
			Tracker:  tracker,
			Logger:   logger,
			Sessions: sessions,
			Auth: publicauth.Config{
				LoginURL:     cfg.LoginURL,
				SchemePolicy: policy,
			},
			Clock:         cfg.Clock,
			UploadTimeout: cfg.UploadTimeout,
			Version:       cfg.Version,
		},
		EnableExperimentalModules: cfg.EnableMCP,
	})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	protect, err := csrfProtection(cfg.SessionSecret, cfg.SecureCookies, policy, base, logger.Named("csrf"))
	if err != nil {
		return nil, err
	}

	return httpx.Chain(app,
		httpx.RequestID(),
		httpx.RequestLog(logger.Named("http")),
		httpx.RecoverPanic(logger),
		route.CanonicalPaths,
		sessions.Middleware(),
		limitRequestBodies(base),
		protect,
	), nil
}
