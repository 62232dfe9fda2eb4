// Package public serves the home page and the liveness probe.
package public

import (
	"net/http"

	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// Module provides the root routes.
type Module struct {
	base modulehandler.Base
}

// New returns the public module.
func New(base modulehandler.Base) Module {
	return Module{base: base}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "public" }

// Mount wires the home page and health routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.base))
	return module.Mount{
		Prefixes: []string{routepath.Root, routepath.Health},
		Handler:  mux,
	}, nil
}
