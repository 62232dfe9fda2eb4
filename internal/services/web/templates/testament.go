package templates

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// TestamentTitle returns the localized testament name.
func TestamentTitle(loc Localizer, testament content.Testament) string {
	if testament == content.TestamentNew {
		return T(loc, "web.testament.new_title")
	}
	return T(loc, "web.testament.old_title")
}

// TestamentSubtitle returns the localized testament description.
func TestamentSubtitle(loc Localizer, testament content.Testament) string {
	if testament == content.TestamentNew {
		return T(loc, "web.testament.new_subtitle")
	}
	return T(loc, "web.testament.old_subtitle")
}

// TestamentContent renders verse cards linking to their detail pages.
func TestamentContent(loc Localizer, testament content.Testament, verses []content.Verse) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div`)
		h.attr("id", "testament-"+string(testament)+"-content")
		h.raw(`>`)
		if len(verses) == 0 {
			h.render(Empty(T(loc, "web.testament.empty")))
			h.raw(`</div>`)
			return
		}
		h.raw(`<div class="card-grid two">`)
		for index, verse := range verses {
			h.raw(`<a class="card card-link"`)
			h.attr("href", routepath.Verse(testament, index))
			h.raw(`><h2 class="reference">`)
			h.text(verse.Reference)
			h.raw(`</h2><p class="verse-text clamp">`)
			h.text(verse.Text)
			h.raw(`</p></a>`)
		}
		h.raw(`</div></div>`)
	})
}

// TestamentError renders the verses fetch failure.
func TestamentError(loc Localizer) templ.Component {
	return Alert(AlertError, T(loc, "web.testament.error"))
}

func verseBackLabel(loc Localizer, testament content.Testament) string {
	if testament == content.TestamentNew {
		return T(loc, "web.verse.back_new")
	}
	return T(loc, "web.verse.back_old")
}

// VerseDetail renders one verse with its optional image.
func VerseDetail(loc Localizer, testament content.Testament, verse content.Verse) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="container narrow">`)
		h.render(BackLink(routepath.Testament(testament), verseBackLabel(loc, testament)))
		h.raw(`<article class="card detail center"><h1 class="reference">`)
		h.text(verse.Reference)
		h.raw(`</h1><p class="muted">`)
		h.text(TestamentTitle(loc, testament))
		h.raw(`</p><hr><blockquote class="verse-text">“`)
		h.text(verse.Text)
		h.raw(`”</blockquote>`)
		if img, ok := verse.Image.Get(); ok && img != nil {
			h.raw(`<hr><section><h2>`)
			h.text(T(loc, "web.verse.image"))
			h.raw(`</h2>`)
			h.render(Image(loc, img, verse.Reference))
			h.raw(`</section>`)
		}
		h.raw(`</article></div>`)
	})
}

// VerseNotFound renders the not-found state for verse detail. An unknown
// testament links back to the Old Testament listing.
func VerseNotFound(loc Localizer, testament content.Testament) templ.Component {
	if !testament.Valid() {
		testament = content.TestamentOld
	}
	return NotFound(T(loc, "web.verse.not_found"), routepath.Testament(testament), verseBackLabel(loc, testament))
}
