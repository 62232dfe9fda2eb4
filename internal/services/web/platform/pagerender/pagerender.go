// Package pagerender centralizes page rendering for web modules.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/csrf"
	"github.com/louisbranch/sacredverses/internal/services/shared/htmx"
	"github.com/louisbranch/sacredverses/internal/services/shared/i18nhttp"
	flashnotice "github.com/louisbranch/sacredverses/internal/services/web/platform/flash"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/sacredverses/internal/services/web/platform/i18n"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/requestmeta"
	webtemplates "github.com/louisbranch/sacredverses/internal/services/web/templates"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ChromeResolver resolves the header viewer state for a request.
// This decouples rendering from how viewer data is fetched.
type ChromeResolver interface {
	ResolveChrome(r *http.Request) webtemplates.Chrome
}

// ChromeFunc adapts a function to ChromeResolver.
type ChromeFunc func(r *http.Request) webtemplates.Chrome

// ResolveChrome calls f.
func (f ChromeFunc) ResolveChrome(r *http.Request) webtemplates.Chrome {
	return f(r)
}

// Request carries the per-request inputs handlers need to build components.
type Request struct {
	Loc       *message.Printer
	Lang      language.Tag
	CSRFToken string
}

// Page describes a full page response.
type Page struct {
	Title      string
	StatusCode int
	Body       templ.Component
}

// Renderer writes pages inside the shared layout.
type Renderer struct {
	chrome ChromeResolver
	policy requestmeta.SchemePolicy
	now    func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock overrides the clock used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(rd *Renderer) {
		if now != nil {
			rd.now = now
		}
	}
}

// WithSchemePolicy controls how flash cookies decide on the Secure flag.
func WithSchemePolicy(policy requestmeta.SchemePolicy) Option {
	return func(rd *Renderer) {
		rd.policy = policy
	}
}

// New builds a Renderer. A nil chrome renders every viewer as anonymous.
func New(chrome ChromeResolver, opts ...Option) *Renderer {
	rd := &Renderer{chrome: chrome, now: time.Now}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// SchemePolicy returns the policy used for cookies written by handlers.
func (rd *Renderer) SchemePolicy() requestmeta.SchemePolicy {
	if rd == nil {
		return requestmeta.SchemePolicy{}
	}
	return rd.policy
}

// Resolve returns the localizer and CSRF token for r.
func (rd *Renderer) Resolve(w http.ResponseWriter, r *http.Request) Request {
	loc, tag := webi18n.ResolveLocalizer(w, r)
	token := ""
	if r != nil {
		token = csrf.Token(r)
	}
	return Request{Loc: loc, Lang: tag, CSRFToken: token}
}

// WritePage writes page inside the layout, or only its body for HTMX
// requests that swap part of the current document.
func (rd *Renderer) WritePage(w http.ResponseWriter, r *http.Request, req Request, page Page) error {
	if w == nil {
		return nil
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}
	if httpx.IsHTMXRequest(r) && !htmx.IsBoosted(r) {
		return WriteFragment(w, r, page.StatusCode, body)
	}
	if req.Loc == nil {
		req = rd.Resolve(w, r)
	}

	path, rawQuery := "", ""
	if r != nil && r.URL != nil {
		path, rawQuery = r.URL.Path, r.URL.RawQuery
	}
	layout := webtemplates.Layout(webtemplates.PageContext{
		Title:        page.Title,
		Lang:         req.Lang.String(),
		Loc:          req.Loc,
		CurrentPath:  path,
		CurrentQuery: rawQuery,
		Chrome:       rd.resolveChrome(r),
		CSRFToken:    req.CSRFToken,
		Notice:       rd.resolveNotice(w, r, req.Loc),
		Languages:    i18nhttp.LanguageOptions(req.Loc, req.Lang, path, rawQuery),
		Year:         rd.now().Year(),
	})
	var buf bytes.Buffer
	if err := layout.Render(templ.WithChildren(requestContext(r), body), &buf); err != nil {
		return err
	}
	writeHTML(w, page.StatusCode, buf.Bytes())
	return nil
}

// WriteFragment writes c without the layout.
func WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, c templ.Component) error {
	if w == nil {
		return nil
	}
	if c == nil {
		c = emptyComponent{}
	}
	var buf bytes.Buffer
	if err := c.Render(requestContext(r), &buf); err != nil {
		return err
	}
	writeHTML(w, statusCode, buf.Bytes())
	return nil
}

func (rd *Renderer) resolveChrome(r *http.Request) webtemplates.Chrome {
	if rd == nil || rd.chrome == nil || r == nil {
		return webtemplates.Chrome{}
	}
	return rd.chrome.ResolveChrome(r)
}

func (rd *Renderer) resolveNotice(w http.ResponseWriter, r *http.Request, loc *message.Printer) *webtemplates.Notice {
	notice, ok := flashnotice.ReadAndClear(w, r, rd.SchemePolicy())
	if !ok {
		return nil
	}
	message := strings.TrimSpace(webtemplates.T(loc, notice.Key))
	if message == "" {
		return nil
	}
	return &webtemplates.Notice{Kind: string(notice.Kind), Message: message}
}

func writeHTML(w http.ResponseWriter, statusCode int, body []byte) {
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}
