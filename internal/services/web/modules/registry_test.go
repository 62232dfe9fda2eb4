package modules

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/sacredverses/internal/services/web/backend/backendtest"
	"github.com/louisbranch/sacredverses/internal/services/web/data"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/query"
)

func testDependencies() Dependencies {
	return Dependencies{
		Hooks: data.New(query.NewClient(), backendtest.New()),
		Base:  modulehandler.NewTestBase(),
	}
}

func ids(modules []Module) []string {
	out := make([]string, 0, len(modules))
	for _, m := range modules {
		out = append(out, m.ID())
	}
	return out
}

func TestRegistryModuleOrder(t *testing.T) {
	t.Parallel()

	deps := testDependencies()
	if diff := cmp.Diff([]string{"public", "assets", "stories", "testament", "dailyverse", "profile", "publicauth"}, ids(DefaultPublicModules(deps))); diff != "" {
		t.Fatalf("public modules mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"settings", "admin"}, ids(DefaultProtectedModules(deps))); diff != "" {
		t.Fatalf("protected modules mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"mcptools"}, ids(ExperimentalPublicModules(deps))); diff != "" {
		t.Fatalf("experimental modules mismatch (-want +got):\n%s", diff)
	}
}

func TestModulesHaveUniqueValidPrefixes(t *testing.T) {
	t.Parallel()

	deps := testDependencies()
	all := append(DefaultPublicModules(deps), DefaultProtectedModules(deps)...)
	all = append(all, ExperimentalPublicModules(deps)...)
	seen := map[string]string{}
	for _, m := range all {
		mount, err := m.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", m.ID(), err)
		}
		if err := mount.Validate(); err != nil {
			t.Fatalf("module %q mount invalid: %v", m.ID(), err)
		}
		for _, prefix := range mount.Prefixes {
			if owner, ok := seen[prefix]; ok {
				t.Fatalf("prefix %q mounted by %q and %q", prefix, owner, m.ID())
			}
			seen[prefix] = m.ID()
		}
	}
}

func TestRegistryBuildTogglesExperimentalModules(t *testing.T) {
	t.Parallel()

	deps := testDependencies()
	base := NewRegistry().Build(deps, false)
	if got := ids(base.Public); len(got) != 7 || got[len(got)-1] != "publicauth" {
		t.Fatalf("Build(false) public = %v, want default modules only", got)
	}
	withMCP := NewRegistry().Build(deps, true)
	if got := ids(withMCP.Public); got[len(got)-1] != "mcptools" {
		t.Fatalf("Build(true) public = %v, want mcptools last", got)
	}
	if diff := cmp.Diff([]string{"settings", "admin"}, ids(withMCP.Protected)); diff != "" {
		t.Fatalf("protected modules mismatch (-want +got):\n%s", diff)
	}
}
