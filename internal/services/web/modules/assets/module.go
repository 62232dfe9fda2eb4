// Package assets serves the embedded stylesheet.
package assets

import (
	"io/fs"
	"net/http"

	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	"github.com/louisbranch/sacredverses/internal/services/web/static"
)

const cacheControl = "public, max-age=3600"

// Module serves files under the static prefix.
type Module struct {
	files fs.FS
}

// New returns an assets module over the embedded files.
func New() Module {
	return Module{files: static.FS}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "assets" }

// Mount wires the file server.
func (m Module) Mount() (module.Mount, error) {
	files := http.StripPrefix(routepath.StaticPrefix, http.FileServerFS(m.files))
	mux := http.NewServeMux()
	mux.Handle(http.MethodGet+" "+routepath.StaticPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		files.ServeHTTP(w, r)
	}))
	return module.Mount{Prefixes: []string{routepath.StaticPrefix}, Handler: mux}, nil
}
