package profile

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/sacredverses/internal/services/web/backend/backendtest"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/data"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/session"
	"github.com/louisbranch/sacredverses/internal/services/web/query"
)

func newHandler(t *testing.T, fake *backendtest.Fake) http.Handler {
	t.Helper()
	mount, err := New(data.New(query.NewClient(), fake), modulehandler.NewTestBase()).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mount.Handler
}

func serve(h http.Handler, target string, caller content.Caller) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r = r.WithContext(session.WithCaller(r.Context(), caller))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func TestModuleID(t *testing.T) {
	t.Parallel()

	if got := New(nil, modulehandler.NewTestBase()).ID(); got != "profile" {
		t.Fatalf("ID() = %q, want %q", got, "profile")
	}
}

func TestProfileRendersName(t *testing.T) {
	t.Parallel()

	fake := backendtest.New().WithProfile("ruth", content.UserProfile{Name: "Ruth of Moab"})
	rr := serve(newHandler(t, fake), "/u/ruth", content.Anonymous())
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Ruth of Moab") {
		t.Fatalf("body missing profile name")
	}
	if strings.Contains(body, "role-form") {
		t.Fatalf("anonymous caller should not see the role form")
	}
}

func TestProfileShowsRoleFormToAdmins(t *testing.T) {
	t.Parallel()

	fake := backendtest.New().
		WithProfile("ruth", content.UserProfile{Name: "Ruth"}).
		WithRole("admin-1", content.RoleAdmin)
	h := newHandler(t, fake)

	body := serve(h, "/u/ruth", content.Caller{Principal: "admin-1"}).Body.String()
	if !strings.Contains(body, `action="/admin/roles"`) || !strings.Contains(body, `value="ruth"`) {
		t.Fatalf("admin should see the role form")
	}
	body = serve(h, "/u/ruth", content.Caller{Principal: "naomi"}).Body.String()
	if strings.Contains(body, "role-form") {
		t.Fatalf("non-admin should not see the role form")
	}
}

func TestProfileNotFoundAndError(t *testing.T) {
	t.Parallel()

	rr := serve(newHandler(t, backendtest.New()), "/u/nobody", content.Anonymous())
	if rr.Code != http.StatusNotFound || !strings.Contains(rr.Body.String(), "User not found") {
		t.Fatalf("missing profile = %d", rr.Code)
	}

	fake := backendtest.New()
	fake.SetError(backendtest.OpGetUserProfile, apperrors.E(apperrors.KindUnavailable, "down"))
	rr = serve(newHandler(t, fake), "/u/ruth", content.Anonymous())
	if rr.Code != http.StatusServiceUnavailable || !strings.Contains(rr.Body.String(), "Failed to load profile. Please try again later.") {
		t.Fatalf("backend failure = %d", rr.Code)
	}

	rr = serve(newHandler(t, backendtest.New()), "/u/a/b", content.Anonymous())
	if rr.Code != http.StatusNotFound {
		t.Fatalf("nested path status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
