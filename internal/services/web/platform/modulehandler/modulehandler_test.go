package modulehandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/sacredverses/internal/services/web/platform/flash"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/session"
)

func TestCallerDefaultsToAnonymous(t *testing.T) {
	t.Parallel()

	base := NewTestBase()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := base.Caller(r); !got.IsAnonymous() {
		t.Fatalf("Caller() = %+v, want anonymous", got)
	}

	r = r.WithContext(session.WithCaller(r.Context(), content.Caller{Principal: "user-1"}))
	if got := base.Caller(r); got.Principal != "user-1" {
		t.Fatalf("Caller().Principal = %q, want %q", got.Principal, "user-1")
	}
}

func TestIsPartial(t *testing.T) {
	t.Parallel()

	base := NewTestBase()
	tests := []struct {
		target string
		want   bool
	}{
		{target: "/stories", want: false},
		{target: "/stories?partial=content", want: true},
		{target: "/stories?partial=other", want: false},
	}
	for _, tc := range tests {
		if got := base.IsPartial(httptest.NewRequest(http.MethodGet, tc.target, nil)); got != tc.want {
			t.Fatalf("IsPartial(%q) = %v, want %v", tc.target, got, tc.want)
		}
	}
}

func TestWritePageRendersLayout(t *testing.T) {
	t.Parallel()

	base := NewTestBase()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	base.WritePage(rr, r, base.Request(rr, r), "Home", http.StatusOK, templ.Raw(`<p id="marker">hi</p>`))
	body := rr.Body.String()
	if !strings.Contains(body, `id="marker"`) || !strings.Contains(body, "<title>Home · Sacred Verses</title>") {
		t.Fatalf("body = %q, want page with marker", body)
	}
}

func TestWriteNotFoundRendersErrorPage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewTestBase().WriteNotFound(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestWriteErrorUsesKindStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewTestBase().WriteError(rr, httptest.NewRequest(http.MethodPost, "/profile", nil), apperrors.E(apperrors.KindUnavailable, "down"))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestRedirectRejectsExternalTargets(t *testing.T) {
	t.Parallel()

	base := NewTestBase()
	rr := httptest.NewRecorder()
	base.Redirect(rr, httptest.NewRequest(http.MethodPost, "/profile", nil), "//evil.test", "/")
	if got := rr.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want %q", got, "/")
	}

	rr = httptest.NewRecorder()
	hx := httptest.NewRequest(http.MethodPost, "/profile", nil)
	hx.Header.Set("HX-Request", "true")
	base.Redirect(rr, hx, "/stories", "/")
	if got := rr.Header().Get("HX-Redirect"); got != "/stories" {
		t.Fatalf("HX-Redirect = %q, want %q", got, "/stories")
	}
}

func TestFlashWritesCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewTestBase().Flash(rr, httptest.NewRequest(http.MethodPost, "/profile", nil), flashnotice.Success("web.profile.notice_saved"))
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != flashnotice.CookieName {
		t.Fatalf("cookies = %+v, want one flash cookie", cookies)
	}
}

func TestFlashErrorUsesMessageKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "localized", err: apperrors.EK(apperrors.KindInvalidInput, "error.profile.name_required", "name"), want: "error.profile.name_required"},
		{name: "kind", err: apperrors.E(apperrors.KindUnavailable, "down"), want: "error.backend.unavailable"},
		{name: "unknown", err: apperrors.E(apperrors.KindUnknown, "boom"), want: "web.error.message_server_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			NewTestBase().FlashError(rr, httptest.NewRequest(http.MethodPost, "/", nil), tc.err)
			next := httptest.NewRequest(http.MethodGet, "/", nil)
			for _, c := range rr.Result().Cookies() {
				next.AddCookie(c)
			}
			notice, ok := flashnotice.ReadAndClear(nil, next, requestmeta.SchemePolicy{})
			if !ok {
				t.Fatalf("FlashError() wrote no notice")
			}
			if notice.Kind != flashnotice.KindError || notice.Key != tc.want {
				t.Fatalf("FlashError() = %+v, want error %q", notice, tc.want)
			}
		})
	}
}
