// Package i18nhttp resolves the request language from the lang query
// parameter, the language cookie and Accept-Language, in that order.
package i18nhttp

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	platformi18n "github.com/louisbranch/sacredverses/internal/platform/i18n"
	"github.com/louisbranch/sacredverses/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam selects a language for the current and future requests.
	LangParam = "lang"
	// LangCookieName persists the selected language.
	LangCookieName = "sv_lang"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// Supported returns the supported language tags.
func Supported() []language.Tag {
	return platformi18n.SupportedTags()
}

// Default returns the fallback language tag.
func Default() language.Tag {
	return platformi18n.DefaultTag()
}

// Printer returns a message printer backed by the embedded catalog.
func Printer(tag language.Tag) *message.Printer {
	_ = catalog.Default()
	return message.NewPrinter(tag)
}

// ResolveTag determines the language for r. The bool reports whether the
// choice came from the query parameter and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if r.URL != nil {
		if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
			if tag, ok := platformi18n.ParseTag(value); ok {
				return tag, true
			}
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}
	return Default(), false
}

// SetLanguageCookie persists tag for a year.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// NormalizeTag coerces value to a supported tag.
func NormalizeTag(value string) language.Tag {
	tag, _ := platformi18n.ParseTag(value)
	return tag
}

// LanguageOptions builds the switcher entries for the page at path?rawQuery.
func LanguageOptions(printer *message.Printer, active language.Tag, path string, rawQuery string) []LanguageOption {
	supported := Supported()
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		label := tag.String()
		if printer != nil {
			if localized := strings.TrimSpace(printer.Sprintf(LanguageKeyLabel(tag))); localized != "" {
				label = localized
			}
		}
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  label,
			URL:    LanguageURL(path, rawQuery, tag.String()),
			Active: tag == active,
		})
	}
	return options
}

// LanguageURL returns path with the lang parameter set to tag.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

// LanguageKeyLabel maps tag to its catalog label key.
func LanguageKeyLabel(tag language.Tag) string {
	switch NormalizeTag(tag.String()) {
	case language.BrazilianPortuguese:
		return "core.lang_pt_br"
	default:
		return "core.lang_en"
	}
}
