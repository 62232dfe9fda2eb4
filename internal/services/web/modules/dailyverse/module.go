// Package dailyverse serves the verse of the day and its forced refresh.
package dailyverse

import (
	"context"
	"net/http"
	"time"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	"go.uber.org/zap"
)

// Gateway is the data access the daily verse module needs.
type Gateway interface {
	DailyVerse(ctx context.Context, caller content.Caller) (content.Verse, error)
	RefreshDailyVerse(ctx context.Context, caller content.Caller) (content.Verse, error)
	PeekDailyVerse() (content.Verse, bool)
}

// Module provides the daily verse routes.
type Module struct {
	gateway Gateway
	base    modulehandler.Base
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a Module.
type Option func(*Module)

// WithClock overrides the clock used for the page date.
func WithClock(now func() time.Time) Option {
	return func(m *Module) {
		if now != nil {
			m.now = now
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

// New returns a daily verse module.
func New(gateway Gateway, base modulehandler.Base, opts ...Option) Module {
	m := Module{gateway: gateway, base: base, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dailyverse" }

// Healthy reports whether the module has a gateway.
func (m Module) Healthy() bool {
	return m.gateway != nil
}

// Mount wires the daily verse routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: m.base, gateway: m.gateway, logger: m.logger, now: m.now})
	return module.Mount{
		Prefixes: []string{routepath.DailyVerse, routepath.DailyVerse + "/"},
		Handler:  mux,
	}, nil
}
