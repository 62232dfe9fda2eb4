package templates

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// DailyVerseContentID is the swap target of the Refresh button.
const DailyVerseContentID = "daily-verse-content"

// DailyVerseContent renders the verse card with its Refresh button.
func DailyVerseContent(loc Localizer, verse content.Verse, csrfToken string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<article class="card detail center"`)
		h.attr("id", DailyVerseContentID)
		h.raw(`><h2 class="reference">`)
		h.text(verse.Reference)
		h.raw(`</h2><blockquote class="verse-text italic">“`)
		h.text(verse.Text)
		h.raw(`”</blockquote>`)
		if img, ok := verse.Image.Get(); ok && img != nil {
			h.render(Image(loc, img, verse.Reference))
		}
		h.raw(`<form method="post" class="center"`)
		h.attr("action", routepath.DailyVerseRefresh)
		h.attr("hx-post", routepath.DailyVerseRefresh)
		h.attr("hx-target", "#"+DailyVerseContentID)
		h.raw(` hx-swap="outerHTML" hx-disabled-elt="find button">`)
		h.csrfField(csrfToken)
		h.raw(`<button type="submit" class="btn btn-outline btn-sm">↻ `)
		h.text(T(loc, "web.daily.refresh"))
		h.raw(`</button></form><p class="muted footnote">`)
		h.text(T(loc, "web.daily.footnote"))
		h.raw(`</p></article>`)
	})
}

// DailyVerseError renders the daily verse fetch failure.
func DailyVerseError(loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div`)
		h.attr("id", DailyVerseContentID)
		h.raw(`>`)
		h.render(Alert(AlertError, T(loc, "web.daily.error")))
		h.raw(`</div>`)
	})
}
