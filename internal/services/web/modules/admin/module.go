// Package admin serves role management for administrators.
package admin

import (
	"context"
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// Gateway assigns roles. The backend enforces that the caller is an admin.
type Gateway interface {
	AssignRole(ctx context.Context, caller content.Caller, principal string, role content.Role) error
}

// Module provides administrator routes.
type Module struct {
	gateway Gateway
	base    modulehandler.Base
}

// New returns an admin module.
func New(gateway Gateway, base modulehandler.Base) Module {
	return Module{gateway: gateway, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "admin" }

// Healthy reports whether the module has a gateway.
func (m Module) Healthy() bool {
	return m.gateway != nil
}

// Mount wires administrator route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: m.base, gateway: m.gateway})
	return module.Mount{Prefixes: []string{routepath.AdminPrefix}, Handler: mux}, nil
}
