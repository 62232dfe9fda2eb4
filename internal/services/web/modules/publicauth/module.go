// Package publicauth owns sign-in and sign-out. Identity is issued by an
// external login provider; this module only accepts its signed token.
package publicauth

import (
	"net/http"

	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// Config carries the login provider settings.
type Config struct {
	LoginURL     string
	SchemePolicy requestmeta.SchemePolicy
}

// Module provides session routes.
type Module struct {
	service service
	base    modulehandler.Base
}

// New returns a publicauth module. Nil sessions disable sign-in.
func New(sessions Sessions, base modulehandler.Base, cfg Config) Module {
	return Module{service: newService(sessions, cfg.LoginURL, cfg.SchemePolicy), base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "publicauth" }

// Healthy reports whether sign-in is available.
func (m Module) Healthy() bool {
	return m.service.sessions.Enabled()
}

// Mount wires session route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: m.base, service: m.service})
	return module.Mount{
		Prefixes: []string{routepath.Login, routepath.AuthPrefix, routepath.Logout},
		Handler:  mux,
	}, nil
}
