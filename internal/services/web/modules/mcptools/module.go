// Package mcptools exposes read-only scripture content as Model Context
// Protocol tools over streamable HTTP.
package mcptools

import (
	"context"
	"net/http"
	"strings"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "sacred-verses"

// Gateway is the read-only data access the tools need.
type Gateway interface {
	Stories(ctx context.Context, caller content.Caller) ([]content.Story, error)
	VersesByTestament(ctx context.Context, caller content.Caller, testament content.Testament) ([]content.Verse, error)
	DailyVerse(ctx context.Context, caller content.Caller) (content.Verse, error)
	UserProfile(ctx context.Context, caller content.Caller, principal string) (content.Option[content.UserProfile], error)
}

// Module serves the MCP endpoint.
type Module struct {
	gateway Gateway
	version string
}

// New returns an MCP tools module reporting version to clients.
func New(gateway Gateway, version string) Module {
	version = strings.TrimSpace(version)
	if version == "" {
		version = "dev"
	}
	return Module{gateway: gateway, version: version}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "mcptools" }

// Healthy reports whether the module has a gateway.
func (m Module) Healthy() bool {
	return m.gateway != nil
}

// Mount wires the streamable HTTP transport at the MCP route.
func (m Module) Mount() (module.Mount, error) {
	server, err := newServer(m.gateway, m.version)
	if err != nil {
		return module.Mount{}, err
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	mux := http.NewServeMux()
	mux.Handle(routepath.MCP, handler)
	return module.Mount{Prefixes: []string{routepath.MCP}, Handler: mux}, nil
}

func newServer(gateway Gateway, version string) (*mcp.Server, error) {
	if gateway == nil {
		return nil, errGatewayRequired
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	registerTools(server, tools{gateway: gateway})
	return server, nil
}
