package templates

import "github.com/a-h/templ"

// ListPage renders a titled page whose body is either the resolved content
// or a skeleton that loads it.
func ListPage(title string, subtitle string, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="container"><div class="page-header"><h1>`)
		h.text(title)
		h.raw(`</h1>`)
		if subtitle != "" {
			h.raw(`<p class="lead">`)
			h.text(subtitle)
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
		h.render(body)
		h.raw(`</div>`)
	})
}
