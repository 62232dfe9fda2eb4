// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/sacredverses/internal/services/web/templates"
)

var kindKeys = map[apperrors.Kind]string{
	apperrors.KindInvalidInput: "error.backend.invalid",
	apperrors.KindUnauthorized: "error.backend.unauthenticated",
	apperrors.KindForbidden:    "error.backend.forbidden",
	apperrors.KindNotFound:     "error.backend.not_found",
	apperrors.KindUnavailable:  "error.backend.unavailable",
}

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message. Raw error
// text is never returned.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	key := MessageKey(err)
	if loc != nil && key != "" {
		if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// MessageKey returns the localization key describing err: its own key when
// typed with one, otherwise the key of its kind.
func MessageKey(err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		return key
	}
	return kindKeys[apperrors.KindOf(err)]
}

// WriteAppError writes a localized error page with statusCode. Statuses
// without a dedicated page render as server errors.
func WriteAppError(w http.ResponseWriter, r *http.Request, rd *pagerender.Renderer, statusCode int) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	req := rd.Resolve(w, r)
	err := rd.WritePage(w, r, req, pagerender.Page{
		Title:      webtemplates.ErrorPageTitle(statusCode, req.Loc),
		StatusCode: statusCode,
		Body:       webtemplates.ErrorState(statusCode, req.Loc, ""),
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError writes err as an error page for not-found and server
// failures, and as a localized plain-text message otherwise.
func WriteModuleError(w http.ResponseWriter, r *http.Request, rd *pagerender.Renderer, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, rd, statusCode)
		return
	}
	req := rd.Resolve(w, r)
	http.Error(w, PublicMessage(req.Loc, err), statusCode)
}
