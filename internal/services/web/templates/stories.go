package templates

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// StoriesContent renders the story cards or the empty state.
func StoriesContent(loc Localizer, stories []content.Story) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div id="stories-content">`)
		if len(stories) == 0 {
			h.render(Empty(T(loc, "web.stories.empty")))
			h.raw(`</div>`)
			return
		}
		h.raw(`<div class="card-grid three">`)
		for index, story := range stories {
			h.raw(`<a class="card card-link"`)
			h.attr("href", routepath.Story(index))
			h.raw(`><h2>`)
			h.text(story.Title)
			h.raw(`</h2><p class="clamp">`)
			h.text(story.Summary)
			h.raw(`</p><span class="muted">`)
			h.text(VerseCount(loc, len(story.Verses)))
			h.raw(`</span></a>`)
		}
		h.raw(`</div></div>`)
	})
}

// StoriesError renders the stories fetch failure.
func StoriesError(loc Localizer) templ.Component {
	return Alert(AlertError, T(loc, "web.stories.error"))
}

// StoryDetailView is the input of StoryDetail.
type StoryDetailView struct {
	Index  int
	Story  content.Story
	Upload UploadSectionView
}

// StoryDetail renders one story: image section, scripture and summary.
func StoryDetail(loc Localizer, view StoryDetailView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="container narrow">`)
		h.render(BackLink(routepath.Stories, T(loc, "web.story.back")))
		h.raw(`<article class="card detail"><h1>`)
		h.text(view.Story.Title)
		h.raw(`</h1>`)
		h.render(UploadSection(loc, view.Upload))
		h.raw(`<hr><section><h2>`)
		h.text(T(loc, "web.story.verses"))
		h.raw(`</h2><div class="verse-stack">`)
		for _, verse := range view.Story.Verses {
			h.raw(`<div class="verse"><p class="reference">`)
			h.text(verse.Reference)
			h.raw(`</p><p class="verse-text">`)
			h.text(verse.Text)
			h.raw(`</p></div>`)
		}
		h.raw(`</div></section><hr><section><h2>`)
		h.text(T(loc, "web.story.summary"))
		h.raw(`</h2><p class="lead">`)
		h.text(view.Story.Summary)
		h.raw(`</p></section></article></div>`)
	})
}

// StoryNotFound renders the not-found state shared by bad indexes and
// failed fetches.
func StoryNotFound(loc Localizer) templ.Component {
	return NotFound(T(loc, "web.story.not_found"), routepath.Stories, T(loc, "web.story.back"))
}
