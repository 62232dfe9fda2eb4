package templates

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/shared/i18nhttp"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// HTMXScriptURL is the pinned HTMX build the layout loads.
const HTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Chrome is the viewer state the header renders.
type Chrome struct {
	SignedIn     bool
	DisplayName  string
	Role         content.Role
	NeedsProfile bool
}

// Notice is a one-shot message rendered above the page content.
type Notice struct {
	Kind    string
	Message string
}

// PageContext carries the layout inputs shared by every full page.
type PageContext struct {
	Title        string
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	Chrome       Chrome
	CSRFToken    string
	Notice       *Notice
	Languages    []i18nhttp.LanguageOption
	Year         int
}

type navLink struct {
	href string
	key  string
}

var navLinks = []navLink{
	{href: routepath.Root, key: "web.nav.home"},
	{href: routepath.DailyVerse, key: "web.nav.daily_verse"},
	{href: routepath.Stories, key: "web.nav.stories"},
	{href: routepath.OldTestament, key: "web.nav.old_testament"},
	{href: routepath.NewTestament, key: "web.nav.new_testament"},
}

// Layout renders the document shell around the context children.
func Layout(page PageContext) templ.Component {
	return component(func(h *htmlWriter) {
		appName := T(page.Loc, "core.app_name")
		title := appName
		if page.Title != "" && page.Title != appName {
			title = page.Title + " · " + appName
		}
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}

		h.raw(`<!DOCTYPE html><html`)
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(`</title><meta name="description"`)
		h.attr("content", T(page.Loc, "web.meta.description"))
		h.raw(`><link rel="stylesheet" href="`, routepath.StaticPrefix, `app.css"><script defer`)
		h.attr("src", HTMXScriptURL)
		h.raw(`></script></head><body class="site"`)
		if headers := htmxHeaders(page.CSRFToken); headers != "" {
			h.attr("hx-headers", headers)
		}
		h.raw(`>`)

		h.render(siteHeader(page, appName))
		if page.Chrome.SignedIn && page.Chrome.NeedsProfile {
			h.render(ProfilePrompt(page.Loc, page.CSRFToken, page.CurrentPath))
		}
		if page.Notice != nil && page.Notice.Message != "" {
			h.raw(`<div class="container">`)
			h.render(Alert(page.Notice.Kind, page.Notice.Message))
			h.raw(`</div>`)
		}
		h.raw(`<main id="main" class="site-main">`)
		h.children()
		h.raw(`</main>`)
		h.render(siteFooter(page))
		h.raw(`</body></html>`)
	})
}

func siteHeader(page PageContext, appName string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<header class="site-header"><div class="container header-row"><a class="brand" href="/">`)
		h.text(appName)
		h.raw(`</a><nav class="site-nav">`)
		for _, link := range navLinks {
			h.raw(`<a class="nav-link"`)
			h.attr("href", link.href)
			if isActive(page.CurrentPath, link.href) {
				h.raw(` aria-current="page"`)
			}
			h.raw(`>`)
			h.text(T(page.Loc, link.key))
			h.raw(`</a>`)
		}
		h.raw(`</nav><div class="session">`)
		if page.Chrome.SignedIn {
			h.raw(`<span class="viewer-name">`)
			h.text(page.Chrome.DisplayName)
			h.raw(`</span>`)
			h.render(RoleBadge(page.Loc, page.Chrome.Role))
			h.raw(`<form method="post"`)
			h.attr("action", routepath.Logout)
			h.raw(` class="inline">`)
			h.csrfField(page.CSRFToken)
			h.raw(`<button type="submit" class="btn btn-ghost btn-sm">`)
			h.text(T(page.Loc, "web.nav.sign_out"))
			h.raw(`</button></form>`)
		} else {
			h.raw(`<a class="btn btn-primary btn-sm"`)
			h.attr("href", routepath.LoginWithNext(page.CurrentPath))
			h.raw(`>`)
			h.text(T(page.Loc, "web.nav.sign_in"))
			h.raw(`</a>`)
		}
		h.raw(`</div></div></header>`)
	})
}

func siteFooter(page PageContext) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<footer class="site-footer"><div class="container footer-row"><p class="copyright">`)
		h.text(T(page.Loc, "web.footer.copyright", page.Year))
		h.raw(`</p><span class="tagline">`)
		h.text(T(page.Loc, "web.footer.tagline"))
		h.raw(`</span>`)
		if len(page.Languages) > 0 {
			h.raw(`<nav class="lang-switch"`)
			h.attr("aria-label", T(page.Loc, "web.nav.language"))
			h.raw(`>`)
			for _, option := range page.Languages {
				h.raw(`<a`)
				h.attr("href", option.URL)
				h.attr("hreflang", option.Tag)
				if option.Active {
					h.raw(` aria-current="true" class="active"`)
				}
				h.raw(`>`)
				h.text(option.Label)
				h.raw(`</a>`)
			}
			h.raw(`</nav>`)
		}
		h.raw(`</div></footer>`)
	})
}

// RoleBadge renders the caller's role.
func RoleBadge(loc Localizer, role content.Role) templ.Component {
	return component(func(h *htmlWriter) {
		if role == "" {
			return
		}
		h.raw(`<span`)
		h.attr("class", "badge badge-"+string(role))
		h.raw(`>`)
		h.text(T(loc, "web.role."+string(role)))
		h.raw(`</span>`)
	})
}

// ProfilePrompt asks a signed-in caller without a profile for a name.
func ProfilePrompt(loc Localizer, csrfToken string, next string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section class="container profile-prompt" id="profile-prompt"><div class="card"><h2>`)
		h.text(T(loc, "web.profile.prompt_title"))
		h.raw(`</h2><p>`)
		h.text(T(loc, "web.profile.prompt_body"))
		h.raw(`</p><form method="post"`)
		h.attr("action", routepath.Profile)
		h.raw(` class="form-row">`)
		h.csrfField(csrfToken)
		h.raw(`<input type="hidden"`)
		h.attr("name", routepath.NextQueryKey)
		h.attr("value", next)
		h.raw(`><label for="profile-name">`)
		h.text(T(loc, "web.profile.name_label"))
		h.raw(`</label><input id="profile-name" name="name" type="text" maxlength="80" required autocomplete="name"><button type="submit" class="btn btn-primary">`)
		h.text(T(loc, "web.profile.save"))
		h.raw(`</button></form></div></section>`)
	})
}

func isActive(current string, href string) bool {
	current = strings.TrimSpace(current)
	if href == routepath.Root {
		return current == routepath.Root
	}
	return current == href || strings.HasPrefix(current, href+"/")
}
