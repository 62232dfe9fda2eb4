// Package settings lets a signed-in caller manage their own profile.
package settings

import (
	"context"
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// Gateway saves the caller's profile.
type Gateway interface {
	SaveProfile(ctx context.Context, caller content.Caller, profile content.UserProfile) error
}

// Module provides the profile form endpoint.
type Module struct {
	gateway Gateway
	base    modulehandler.Base
}

// New returns a settings module.
func New(gateway Gateway, base modulehandler.Base) Module {
	return Module{gateway: gateway, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "settings" }

// Healthy reports whether the module has a gateway.
func (m Module) Healthy() bool {
	return m.gateway != nil
}

// Mount wires the profile form handler.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: m.base, gateway: m.gateway})
	return module.Mount{Prefixes: []string{routepath.Profile}, Handler: mux}, nil
}
