package templates

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter streams markup and remembers the first write error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

func (h *htmlWriter) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

func (h *htmlWriter) text(value string) {
	h.raw(templ.EscapeString(value))
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

// attr writes ` name="value"` with value escaped.
func (h *htmlWriter) attr(name string, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (h *htmlWriter) render(c templ.Component) {
	if c == nil || h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func (h *htmlWriter) children() {
	h.render(templ.GetChildren(h.ctx))
}

// csrfField writes the hidden form field gorilla/csrf reads.
func (h *htmlWriter) csrfField(token string) {
	if token == "" {
		return
	}
	h.raw(`<input type="hidden"`)
	h.attr("name", CSRFFieldName)
	h.attr("value", token)
	h.raw(">")
}

// CSRFFieldName matches gorilla/csrf's default form field.
const CSRFFieldName = "gorilla.csrf.Token"

// CSRFHeaderName matches gorilla/csrf's default request header.
const CSRFHeaderName = "X-CSRF-Token"

func htmxHeaders(token string) string {
	if token == "" {
		return ""
	}
	payload, err := json.Marshal(map[string]string{CSRFHeaderName: token})
	if err != nil {
		return ""
	}
	return string(payload)
}

// safeImageSrc returns src when the browser may load it directly.
func safeImageSrc(src string) string {
	src = strings.TrimSpace(src)
	lower := strings.ToLower(src)
	switch {
	case src == "":
		return ""
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		return src
	case strings.HasPrefix(lower, "data:image/"):
		return src
	case strings.HasPrefix(src, "/") && !strings.HasPrefix(src, "//"):
		return src
	default:
		return ""
	}
}
