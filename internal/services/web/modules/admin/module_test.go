package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/louisbranch/sacredverses/internal/services/web/backend/backendtest"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/data"
	flashnotice "github.com/louisbranch/sacredverses/internal/services/web/platform/flash"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/session"
	"github.com/louisbranch/sacredverses/internal/services/web/query"
)

func assign(t *testing.T, hooks *data.Hooks, caller content.Caller, form url.Values) (*httptest.ResponseRecorder, flashnotice.Notice) {
	t.Helper()
	mount, err := New(hooks, modulehandler.NewTestBase()).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, "/admin/roles", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r = r.WithContext(session.WithCaller(r.Context(), caller))
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, r)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		next.AddCookie(c)
	}
	notice, _ := flashnotice.ReadAndClear(nil, next, requestmeta.SchemePolicy{})
	return rr, notice
}

func TestAssignRoleAsAdmin(t *testing.T) {
	t.Parallel()

	fake := backendtest.New().WithRole("admin-1", content.RoleAdmin)
	hooks := data.New(query.NewClient(), fake)

	rr, notice := assign(t, hooks, content.Caller{Principal: "admin-1"}, url.Values{"principal": {"ruth"}, "role": {"admin"}})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/u/ruth" {
		t.Fatalf("Location = %q, want %q", got, "/u/ruth")
	}
	if notice != flashnotice.Success("web.admin.notice_assigned") {
		t.Fatalf("flash = %+v", notice)
	}
	isAdmin, err := hooks.IsCallerAdmin(context.Background(), content.Caller{Principal: "ruth"})
	if err != nil || !isAdmin {
		t.Fatalf("IsCallerAdmin(ruth) = %v, %v, want true", isAdmin, err)
	}
}

func TestAssignRoleFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		caller    content.Caller
		form      url.Values
		want      string
		wantCalls int
	}{
		{name: "not admin", caller: content.Caller{Principal: "naomi"}, form: url.Values{"principal": {"ruth"}, "role": {"admin"}}, want: "error.backend.forbidden", wantCalls: 1},
		{name: "unknown role", caller: content.Caller{Principal: "admin-1"}, form: url.Values{"principal": {"ruth"}, "role": {"king"}}, want: "error.roles.unknown"},
		{name: "missing principal", caller: content.Caller{Principal: "admin-1"}, form: url.Values{"role": {"user"}}, want: "error.roles.principal_required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fake := backendtest.New().WithRole("admin-1", content.RoleAdmin)
			rr, notice := assign(t, data.New(query.NewClient(), fake), tc.caller, tc.form)
			if rr.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
			}
			if notice != flashnotice.Error(tc.want) {
				t.Fatalf("flash = %+v, want %q", notice, tc.want)
			}
			if got := fake.Calls(backendtest.OpAssignCallerUserRole); got != tc.wantCalls {
				t.Fatalf("assign calls = %d, want %d", got, tc.wantCalls)
			}
		})
	}
}

func TestAdminUnknownRoute(t *testing.T) {
	t.Parallel()

	mount, err := New(nil, modulehandler.NewTestBase()).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/roles", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
