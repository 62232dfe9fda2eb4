// Package i18n resolves the page localizer for a web request.
package i18n

import (
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/shared/i18nhttp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ResolveLocalizer returns the printer and tag for r, persisting an explicit
// lang query choice in the language cookie.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (*message.Printer, language.Tag) {
	tag, persist := i18nhttp.ResolveTag(r)
	if persist {
		i18nhttp.SetLanguageCookie(w, tag)
	}
	return i18nhttp.Printer(tag), tag
}
