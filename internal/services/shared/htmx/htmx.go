// Package htmx reads and writes the HTMX request and response headers.
package htmx

import (
	"net/http"
	"strings"
)

// Request headers sent by HTMX.
const (
	RequestHeader = "HX-Request"
	BoostedHeader = "HX-Boosted"
)

// Response headers HTMX acts on.
const (
	RedirectHeader = "HX-Redirect"
	RefreshHeader  = "HX-Refresh"
)

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	return headerTrue(r, RequestHeader)
}

// IsBoosted reports whether the request comes from an hx-boost navigation,
// which swaps the whole body and so expects a full page.
func IsBoosted(r *http.Request) bool {
	return headerTrue(r, BoostedHeader)
}

// Redirect asks HTMX to navigate the browser to location.
func Redirect(w http.ResponseWriter, location string) {
	if w == nil {
		return
	}
	w.Header().Set(RedirectHeader, location)
	w.WriteHeader(http.StatusOK)
}

// Refresh asks HTMX to reload the current page once the response is handled.
func Refresh(w http.ResponseWriter) {
	if w == nil {
		return
	}
	w.Header().Set(RefreshHeader, "true")
}

func headerTrue(r *http.Request, key string) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get(key)), "true")
}
