package templates

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

const (
	errorPageTitleNotFoundKey  = "web.error.page_title_not_found"
	errorPageTitleServerErrKey = "web.error.page_title_server_error"
	errorMessageNotFoundKey    = "web.error.message_not_found"
	errorMessageServerErrKey   = "web.error.message_server_error"
	errorBackHomeKey           = "web.error.back_home"
)

// ErrorPageTitle returns the browser title for error pages.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, errorPageTitleNotFoundKey)
	}
	return T(loc, errorPageTitleServerErrKey)
}

// ErrorState renders the generic error page body. A non-empty message
// replaces the default text for the status.
func ErrorState(statusCode int, loc Localizer, message string) templ.Component {
	return component(func(h *htmlWriter) {
		if message == "" {
			message = T(loc, errorMessageServerErrKey)
			if normalizeErrorStatus(statusCode) == http.StatusNotFound {
				message = T(loc, errorMessageNotFoundKey)
			}
		}
		h.raw(`<div class="container narrow error-state"><h1>`)
		h.text(ErrorPageTitle(statusCode, loc))
		h.raw(`</h1>`)
		h.render(Alert(AlertError, message))
		h.render(BackLink(routepath.Root, T(loc, errorBackHomeKey)))
		h.raw(`</div>`)
	})
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
