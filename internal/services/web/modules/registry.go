package modules

import (
	"github.com/louisbranch/sacredverses/internal/services/web/modules/admin"
	"github.com/louisbranch/sacredverses/internal/services/web/modules/assets"
	"github.com/louisbranch/sacredverses/internal/services/web/modules/dailyverse"
	"github.com/louisbranch/sacredverses/internal/services/web/modules/mcptools"
	"github.com/louisbranch/sacredverses/internal/services/web/modules/profile"
	"github.com/louisbranch/sacredverses/internal/services/web/modules/public"
	"github.com/louisbranch/sacredverses/internal/services/web/modules/publicauth"
	"github.com/louisbranch/sacredverses/internal/services/web/modules/settings"
	"github.com/louisbranch/sacredverses/internal/services/web/modules/stories"
	"github.com/louisbranch/sacredverses/internal/services/web/modules/testament"
)

// DefaultPublicModules returns the read-only page modules plus sign-in.
func DefaultPublicModules(deps Dependencies) []Module {
	logger := deps.logger()
	return []Module{
		public.New(deps.Base),
		assets.New(),
		stories.New(deps.Hooks, deps.Base, deps.Tracker,
			stories.WithUploadTimeout(deps.UploadTimeout),
			stories.WithLogger(logger.Named("stories")),
		),
		testament.New(deps.Hooks, deps.Base, logger.Named("testament")),
		dailyverse.New(deps.Hooks, deps.Base,
			dailyverse.WithClock(deps.Clock),
			dailyverse.WithLogger(logger.Named("dailyverse")),
		),
		profile.New(deps.Hooks, deps.Base),
		publicauth.New(deps.Sessions, deps.Base, deps.Auth),
	}
}

// DefaultProtectedModules returns modules whose routes mutate caller-owned or
// admin-gated state.
func DefaultProtectedModules(deps Dependencies) []Module {
	return []Module{
		settings.New(deps.Hooks, deps.Base),
		admin.New(deps.Hooks, deps.Base),
	}
}

// ExperimentalPublicModules returns opt-in modules.
func ExperimentalPublicModules(deps Dependencies) []Module {
	return []Module{
		mcptools.New(deps.Hooks, deps.Version),
	}
}

// BuildOutput groups modules by their mount policy.
type BuildOutput struct {
	Public    []Module
	Protected []Module
}

// Registry selects module sets for composition.
type Registry struct{}

// NewRegistry returns the default registry.
func NewRegistry() Registry {
	return Registry{}
}

// Build returns the default modules, plus experimental ones when enabled.
func (Registry) Build(deps Dependencies, experimental bool) BuildOutput {
	public := DefaultPublicModules(deps)
	if experimental {
		public = append(public, ExperimentalPublicModules(deps)...)
	}
	return BuildOutput{
		Public:    public,
		Protected: DefaultProtectedModules(deps),
	}
}
