package htmx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsHTMXRequest(t *testing.T) {
	t.Run("missing_request_is_not_htmx", func(t *testing.T) {
		t.Parallel()
		if got := IsHTMXRequest(nil); got {
			t.Fatalf("IsHTMXRequest(nil) = true, want false")
		}
	})

	t.Run("true_request_is_htmx", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(RequestHeader, "TRUE")
		if got := IsHTMXRequest(r); !got {
			t.Fatalf("IsHTMXRequest() = false, want true")
		}
	})

	t.Run("other_values_are_not_htmx", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(RequestHeader, "1")
		if got := IsHTMXRequest(r); got {
			t.Fatalf("IsHTMXRequest() = true, want false")
		}
	})
}

func TestIsBoosted(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/stories", nil)
	if IsBoosted(r) {
		t.Fatalf("IsBoosted() = true without header")
	}
	r.Header.Set(BoostedHeader, "true")
	if !IsBoosted(r) {
		t.Fatalf("IsBoosted() = false, want true")
	}
}

func TestRedirectAndRefresh(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Redirect(rr, "/stories/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get(RedirectHeader); got != "/stories/1" {
		t.Fatalf("%s = %q, want %q", RedirectHeader, got, "/stories/1")
	}

	rr = httptest.NewRecorder()
	Refresh(rr)
	if got := rr.Header().Get(RefreshHeader); got != "true" {
		t.Fatalf("%s = %q, want %q", RefreshHeader, got, "true")
	}
}
