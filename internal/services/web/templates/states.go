package templates

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
)

// Alert kinds.
const (
	AlertError   = "error"
	AlertSuccess = "success"
	AlertInfo    = "info"
)

// Alert renders a fixed message banner.
func Alert(kind string, message string) templ.Component {
	return component(func(h *htmlWriter) {
		if kind == "" {
			kind = AlertInfo
		}
		h.raw(`<div role="alert"`)
		h.attr("class", "alert alert-"+kind)
		h.raw(`>`)
		h.text(message)
		h.raw(`</div>`)
	})
}

// Skeleton renders placeholder rows that replace themselves with the
// fragment at src once the browser loads the page.
func Skeleton(loc Localizer, src string, rows int) templ.Component {
	return component(func(h *htmlWriter) {
		if rows <= 0 {
			rows = 3
		}
		h.raw(`<div class="skeleton-list" aria-busy="true"`)
		h.attr("hx-get", src)
		h.raw(` hx-trigger="load" hx-swap="outerHTML"><span class="sr-only">`)
		h.text(T(loc, "web.loading"))
		h.raw(`</span>`)
		for range rows {
			h.raw(`<div class="card skeleton-card"><div class="skeleton skeleton-title"></div><div class="skeleton skeleton-line"></div><div class="skeleton skeleton-line short"></div></div>`)
		}
		h.raw(`</div>`)
	})
}

// NotFound renders the not-found message with a back link.
func NotFound(message string, backHref string, backLabel string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="container narrow">`)
		h.render(BackLink(backHref, backLabel))
		h.render(Alert(AlertError, message))
		h.raw(`</div>`)
	})
}

// BackLink renders the arrow link above detail pages.
func BackLink(href string, label string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<a class="btn btn-ghost back-link"`)
		h.attr("href", href)
		h.raw(`>← `)
		h.text(label)
		h.raw(`</a>`)
	})
}

// Empty renders the explicit empty-state message of a list.
func Empty(message string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="empty-state"><p>`)
		h.text(message)
		h.raw(`</p></div>`)
	})
}

// Image renders img with a placeholder the browser reveals when loading
// fails. Unsafe or empty sources render the placeholder directly.
func Image(loc Localizer, img *content.Image, alt string) templ.Component {
	return component(func(h *htmlWriter) {
		src := safeImageSrc(img.DirectURL())
		if src == "" {
			h.render(ImageFailed(loc, false))
			return
		}
		h.raw(`<figure class="image-frame"><img`)
		h.attr("src", src)
		h.attr("alt", alt)
		h.raw(` loading="lazy" onerror="this.hidden=true;this.nextElementSibling.hidden=false">`)
		h.render(ImageFailed(loc, true))
		h.raw(`</figure>`)
	})
}

// ImageFailed is the persistent "Image failed to load" placeholder.
func ImageFailed(loc Localizer, hidden bool) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="image-failed"`)
		if hidden {
			h.raw(` hidden`)
		}
		h.raw(`><p>`)
		h.text(T(loc, "web.image.failed"))
		h.raw(`</p></div>`)
	})
}
