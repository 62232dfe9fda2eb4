// Package composition assembles the module registry into the application mux.
package composition

import (
	"net/http"

	webapp "github.com/louisbranch/sacredverses/internal/services/web/app"
	"github.com/louisbranch/sacredverses/internal/services/web/modules"
)

// ModuleRegistry builds web module sets from dependencies.
type ModuleRegistry interface {
	Build(deps modules.Dependencies, experimental bool) modules.BuildOutput
}

// ComposeInput describes the contracts needed to compose the application mux.
type ComposeInput struct {
	// Authenticated gates protected modules.
	Authenticated func(*http.Request) bool

	ModuleDependencies modules.Dependencies

	EnableExperimentalModules bool

	Registry ModuleRegistry
}

// ComposeAppHandler builds the web app handler with selected module sets.
func ComposeAppHandler(input ComposeInput) (http.Handler, error) {
	authenticated := input.Authenticated
	if authenticated == nil {
		authenticated = func(*http.Request) bool { return false }
	}

	registry := input.Registry
	if registry == nil {
		registry = modules.NewRegistry()
	}

	built := registry.Build(input.ModuleDependencies, input.EnableExperimentalModules)

	return webapp.Compose(webapp.ComposeInput{
		Authenticated:    authenticated,
		PublicModules:    built.Public,
		ProtectedModules: built.Protected,
	})
}
