// Package app mounts feature modules onto the root mux.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/httpx"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	// Authenticated reports whether a request carries a signed-in caller.
	Authenticated    func(*http.Request) bool
	PublicModules    []module.Module
	ProtectedModules []module.Module
}

// Compose builds a root HTTP handler from module groups. Every prefix may be
// owned by one module only.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.Authenticated == nil {
		input.Authenticated = func(*http.Request) bool { return false }
	}
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountModule(root, feature, seen, nil); err != nil {
			return nil, err
		}
	}

	protect := requireAuth(input.Authenticated)
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountModule(root, feature, seen, protect); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, err := resolveMount(feature)
	if err != nil {
		return err
	}
	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	for _, prefix := range mount.Prefixes {
		if previous, ok := seen[prefix]; ok {
			return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
		}
		seen[prefix] = feature.ID()
		root.Handle(prefix, handler)
	}
	return nil
}

func resolveMount(feature module.Module) (module.Mount, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	for _, prefix := range mount.Prefixes {
		if err := validatePrefix(prefix); err != nil {
			return module.Mount{}, fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), prefix, err)
		}
	}
	if err := mount.Validate(); err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	return mount, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if strings.ContainsAny(prefix, "{} ") {
		return fmt.Errorf("prefix must be a literal path")
	}
	return nil
}

// requireAuth sends anonymous callers to sign in before reaching next.
func requireAuth(authenticated func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			return http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authenticated(r) {
				httpx.WriteRedirect(w, r, routepath.LoginWithNext(refererPath(r)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// refererPath returns the local page the request was submitted from.
func refererPath(r *http.Request) string {
	referer := strings.TrimSpace(r.Referer())
	if referer == "" {
		return ""
	}
	if i := strings.Index(referer, "://"); i >= 0 {
		rest := referer[i+3:]
		host, path, found := strings.Cut(rest, "/")
		if !found || !strings.EqualFold(host, r.Host) {
			return ""
		}
		referer = "/" + path
	}
	return httpx.LocalRedirect(referer, "")
}
