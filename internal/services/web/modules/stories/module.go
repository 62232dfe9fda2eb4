// Package stories serves the story list, story detail and the admin image
// upload flow.
package stories

import (
	"context"
	"net/http"
	"time"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/data"
	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	"github.com/louisbranch/sacredverses/internal/services/web/upload"
	"go.uber.org/zap"
)

const defaultUploadTimeout = 2 * time.Minute

// Gateway is the data access the stories module needs. *data.Hooks
// satisfies it.
type Gateway interface {
	Stories(ctx context.Context, caller content.Caller) ([]content.Story, error)
	PeekStories() ([]content.Story, bool)
	IsCallerAdmin(ctx context.Context, caller content.Caller) (bool, error)
	UploadImage(ctx context.Context, caller content.Caller, upload data.ImageUpload) error
}

// Module provides the story routes.
type Module struct {
	gateway       Gateway
	base          modulehandler.Base
	tracker       *upload.Tracker
	uploadTimeout time.Duration
	logger        *zap.Logger
}

// Option configures a Module.
type Option func(*Module)

// WithUploadTimeout bounds each background upload.
func WithUploadTimeout(d time.Duration) Option {
	return func(m *Module) {
		if d > 0 {
			m.uploadTimeout = d
		}
	}
}

// WithLogger sets the module logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Module) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New returns a stories module. A nil tracker gets a private one.
func New(gateway Gateway, base modulehandler.Base, tracker *upload.Tracker, opts ...Option) Module {
	m := Module{
		gateway:       gateway,
		base:          base,
		tracker:       tracker,
		uploadTimeout: defaultUploadTimeout,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.tracker == nil {
		m.tracker = upload.NewTracker(m.logger, 0)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "stories" }

// Healthy reports whether the module has a gateway.
func (m Module) Healthy() bool {
	return m.gateway != nil
}

// Mount wires story and upload routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m))
	return module.Mount{
		Prefixes: []string{routepath.Stories, routepath.StoriesPrefix, routepath.UploadsPrefix},
		Handler:  mux,
	}, nil
}
