// Package testament serves the Old and New Testament listings and verse
// detail pages.
package testament

import (
	"context"
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	"go.uber.org/zap"
)

// Gateway is the data access the testament module needs.
type Gateway interface {
	VersesByTestament(ctx context.Context, caller content.Caller, testament content.Testament) ([]content.Verse, error)
	PeekVersesByTestament(testament content.Testament) ([]content.Verse, bool)
}

// Module provides testament and verse routes.
type Module struct {
	gateway Gateway
	base    modulehandler.Base
	logger  *zap.Logger
}

// New returns a testament module. A nil logger logs nothing.
func New(gateway Gateway, base modulehandler.Base, logger *zap.Logger) Module {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Module{gateway: gateway, base: base, logger: logger}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "testament" }

// Healthy reports whether the module has a gateway.
func (m Module) Healthy() bool {
	return m.gateway != nil
}

// Mount wires testament listing and verse routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: m.base, gateway: m.gateway, logger: m.logger})
	return module.Mount{
		Prefixes: []string{routepath.OldTestament, routepath.NewTestament, routepath.VersePrefix},
		Handler:  mux,
	}, nil
}
