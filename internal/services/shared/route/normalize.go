// Package route canonicalizes request paths before routing.
package route

import (
	"net/http"
	"strings"
)

// RedirectTrailingSlash redirects GET and HEAD requests whose path ends in
// "/" to the same path without it, keeping the query. The root path and
// paths that would turn into scheme-relative URLs are left alone.
//
// It returns true when a redirect was written. Route handlers should stop
// further processing when true.
func RedirectTrailingSlash(w http.ResponseWriter, r *http.Request) bool {
	if w == nil || r == nil || r.URL == nil {
		return false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	originalPath := r.URL.Path
	canonical := strings.TrimRight(originalPath, "/")
	if canonical == "" || canonical == originalPath || strings.HasPrefix(canonical, "//") {
		return false
	}
	if r.URL.RawQuery != "" {
		canonical += "?" + r.URL.RawQuery
	}

	http.Redirect(w, r, canonical, http.StatusMovedPermanently)
	return true
}

// CanonicalPaths applies RedirectTrailingSlash ahead of next.
func CanonicalPaths(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RedirectTrailingSlash(w, r) {
			return
		}
		next.ServeHTTP(w, r)
	})
}
