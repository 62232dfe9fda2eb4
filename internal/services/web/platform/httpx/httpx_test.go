package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestChainAppliesMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	called := ""
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called += tag
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called += "h"
		w.WriteHeader(http.StatusNoContent)
	}), mw("1"), nil, mw("2"))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if called != "12h" {
		t.Fatalf("call order = %q, want %q", called, "12h")
	}
}

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" {
		t.Fatal("expected generated request id in context")
	}
	if got := rr.Header().Get(RequestIDHeader); got != seen {
		t.Fatalf("%s = %q, want %q", RequestIDHeader, got, seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen != "req-123" {
		t.Fatalf("request id = %q, want %q", seen, "req-123")
	}
}

func TestRecoverPanicReturns500AndLogs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	h := RecoverPanic(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stories/1", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if logs.Len() != 1 {
		t.Fatalf("logged entries = %d, want 1", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["path"]; got != "/stories/1" {
		t.Fatalf("logged path = %v, want /stories/1", got)
	}
}

func TestRequestLogRecordsStatus(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h := RequestLog(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/verse/old-9", nil))
	if logs.Len() != 1 {
		t.Fatalf("logged entries = %d, want 1", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["status"]; got != int64(http.StatusNotFound) {
		t.Fatalf("logged status = %v, want 404", got)
	}
}

func TestWriteRedirect(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteRedirect(rr, httptest.NewRequest(http.MethodPost, "/profile", nil), "/")
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Fatalf("redirect = %d %q, want 303 /", rr.Code, rr.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodPost, "/profile", nil)
	req.Header.Set("HX-Request", "true")
	rr = httptest.NewRecorder()
	WriteRedirect(rr, req, "/stories")
	if rr.Code != http.StatusOK || rr.Header().Get("HX-Redirect") != "/stories" {
		t.Fatalf("htmx redirect = %d %q, want 200 /stories", rr.Code, rr.Header().Get("HX-Redirect"))
	}
}

func TestLocalRedirect(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/stories/2":         "/stories/2",
		"":                   "/",
		"https://evil.test/": "/",
		"//evil.test/":       "/",
		"/\\evil.test":       "/",
		"stories":            "/",
	}
	for in, want := range tests {
		if got := LocalRedirect(in, "/"); got != want {
			t.Fatalf("LocalRedirect(%q) = %q, want %q", in, got, want)
		}
	}
}
