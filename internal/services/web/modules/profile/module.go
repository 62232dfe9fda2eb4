// Package profile serves public user profiles.
package profile

import (
	"context"
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// Gateway is the data access the profile module needs.
type Gateway interface {
	UserProfile(ctx context.Context, caller content.Caller, principal string) (content.Option[content.UserProfile], error)
	IsCallerAdmin(ctx context.Context, caller content.Caller) (bool, error)
}

// Module provides public user profile routes.
type Module struct {
	gateway Gateway
	base    modulehandler.Base
}

// New returns a profile module.
func New(gateway Gateway, base modulehandler.Base) Module {
	return Module{gateway: gateway, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "profile" }

// Healthy reports whether the module has a gateway.
func (m Module) Healthy() bool {
	return m.gateway != nil
}

// Mount wires public profile route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: m.base, gateway: m.gateway})
	return module.Mount{Prefixes: []string{routepath.UserProfilePrefix}, Handler: mux}, nil
}
