// Package modulehandler provides a composable base for web module handlers.
//
// Modules share caller resolution, localization, page rendering and error
// handling. This package extracts that scaffold so modules embed it rather
// than duplicating it.
package modulehandler

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	flashnotice "github.com/louisbranch/sacredverses/internal/services/web/platform/flash"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/httpx"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/pagerender"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/session"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/weberror"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// Base carries the shared rendering state used by module handlers. Embed
// this in module handler structs.
type Base struct {
	renderer *pagerender.Renderer
}

// NewBase builds a handler base. A nil renderer renders anonymous chrome.
func NewBase(renderer *pagerender.Renderer) Base {
	if renderer == nil {
		renderer = pagerender.New(nil)
	}
	return Base{renderer: renderer}
}

// NewTestBase builds a handler base with anonymous chrome for tests that do
// not exercise viewer state.
func NewTestBase() Base {
	return NewBase(nil)
}

// Caller returns the identity the request is made on behalf of.
func (Base) Caller(r *http.Request) content.Caller {
	return session.CallerFromRequest(r)
}

// Request resolves the localizer and CSRF token for r.
func (b Base) Request(w http.ResponseWriter, r *http.Request) pagerender.Request {
	return b.renderer.Resolve(w, r)
}

// IsPartial reports whether r asks only for a list page's content fragment.
func (Base) IsPartial(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}
	return strings.TrimSpace(r.URL.Query().Get(routepath.PartialQueryKey)) == routepath.PartialQueryValue
}

// WritePage renders a full page (HTMX-aware) with the given title and body.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, req pagerender.Request, title string, statusCode int, body templ.Component) {
	if err := b.renderer.WritePage(w, r, req, pagerender.Page{
		Title:      title,
		StatusCode: statusCode,
		Body:       body,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteFragment renders body without the layout.
func (b Base) WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, body templ.Component) {
	if err := pagerender.WriteFragment(w, r, statusCode, body); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, b.renderer, err)
}

// WriteNotFound renders the 404 error page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, b.renderer, http.StatusNotFound)
}

// Flash stores a notice for the next rendered page.
func (b Base) Flash(w http.ResponseWriter, r *http.Request, notice flashnotice.Notice) {
	flashnotice.Write(w, r, b.renderer.SchemePolicy(), notice)
}

// Redirect sends the browser to a local path, falling back to fallback for
// anything that is not one.
func (Base) Redirect(w http.ResponseWriter, r *http.Request, target string, fallback string) {
	httpx.WriteRedirect(w, r, httpx.LocalRedirect(target, fallback))
}

// FlashError stores the localized message for err as an error notice.
func (b Base) FlashError(w http.ResponseWriter, r *http.Request, err error) {
	key := weberror.MessageKey(err)
	if key == "" {
		key = "web.error.message_server_error"
	}
	b.Flash(w, r, flashnotice.Error(key))
}
