package templates

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

type homeCard struct {
	href     string
	titleKey string
	bodyKey  string
	accent   string
}

var homeCards = []homeCard{
	{href: routepath.DailyVerse, titleKey: "web.home.card_daily_title", bodyKey: "web.home.card_daily_body", accent: "accent"},
	{href: routepath.Stories, titleKey: "web.home.card_stories_title", bodyKey: "web.home.card_stories_body", accent: "primary"},
	{href: routepath.OldTestament, titleKey: "web.home.card_old_title", bodyKey: "web.home.card_old_body", accent: "old"},
	{href: routepath.NewTestament, titleKey: "web.home.card_new_title", bodyKey: "web.home.card_new_body", accent: "new"},
}

// Home renders the landing page with one card per section.
func Home(loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="container"><div class="hero"><h1>`)
		h.text(T(loc, "web.home.title"))
		h.raw(`</h1><p class="lead">`)
		h.text(T(loc, "web.home.subtitle"))
		h.raw(`</p></div><div class="card-grid two">`)
		for _, card := range homeCards {
			h.raw(`<a`)
			h.attr("class", "card card-link accent-"+card.accent)
			h.attr("href", card.href)
			h.raw(`><h2>`)
			h.text(T(loc, card.titleKey))
			h.raw(`</h2><p>`)
			h.text(T(loc, card.bodyKey))
			h.raw(`</p><span class="card-cta">`)
			h.text(T(loc, "web.home.explore"))
			h.raw(`</span></a>`)
		}
		h.raw(`</div></div>`)
	})
}
