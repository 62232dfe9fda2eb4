package data

import (
	"context"
	"runtime"
	"testing"

	"github.com/louisbranch/sacredverses/internal/services/web/backend/backendtest"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
)

func runtimeYield() {
	runtime.Gosched()
}

func TestViewerAnonymousSkipsBackend(t *testing.T) {
	t.Parallel()

	fake := backendtest.New()
	viewer, err := newHooks(fake).Viewer(context.Background(), content.Anonymous())
	if err != nil {
		t.Fatalf("Viewer() error = %v", err)
	}
	if viewer.SignedIn() || viewer.NeedsProfile() || viewer.Role != content.RoleGuest {
		t.Fatalf("Viewer() = %+v, want anonymous guest", viewer)
	}
	for _, op := range []string{backendtest.OpGetCallerUserProfile, backendtest.OpGetCallerUserRole, backendtest.OpIsCallerAdmin} {
		if calls := fake.Calls(op); calls != 0 {
			t.Fatalf("%s calls = %d, want 0", op, calls)
		}
	}
}

func TestViewerSignedIn(t *testing.T) {
	t.Parallel()

	fake := backendtest.New().
		WithRole(admin.Principal, content.RoleAdmin).
		WithProfile(admin.Principal, content.UserProfile{Name: "Deborah"})
	viewer, err := newHooks(fake).Viewer(context.Background(), admin)
	if err != nil {
		t.Fatalf("Viewer() error = %v", err)
	}
	if !viewer.IsAdmin || viewer.Role != content.RoleAdmin {
		t.Fatalf("Viewer() role = %v admin = %v, want admin", viewer.Role, viewer.IsAdmin)
	}
	if viewer.NeedsProfile() || viewer.DisplayName() != "Deborah" {
		t.Fatalf("Viewer() name = %q needsProfile = %v", viewer.DisplayName(), viewer.NeedsProfile())
	}
}

func TestViewerWithoutProfileNeedsSetup(t *testing.T) {
	t.Parallel()

	viewer, err := newHooks(backendtest.New()).Viewer(context.Background(), ruth)
	if err != nil {
		t.Fatalf("Viewer() error = %v", err)
	}
	if !viewer.NeedsProfile() {
		t.Fatalf("NeedsProfile() = false, want true")
	}
	if viewer.DisplayName() != "ruth" {
		t.Fatalf("DisplayName() = %q, want %q", viewer.DisplayName(), "ruth")
	}
}

func TestViewerKeepsPartialResultsOnError(t *testing.T) {
	t.Parallel()

	fake := backendtest.New().WithProfile(ruth.Principal, content.UserProfile{Name: "Ruth"})
	fake.SetError(backendtest.OpGetCallerUserRole, apperrors.E(apperrors.KindUnavailable, "down"))
	viewer, err := newHooks(fake).Viewer(context.Background(), ruth)
	if err == nil {
		t.Fatalf("Viewer() error = nil, want role error")
	}
	if got := apperrors.KindOf(err); got != apperrors.KindUnavailable {
		t.Fatalf("KindOf(Viewer() error) = %v, want %v", got, apperrors.KindUnavailable)
	}
	if viewer.Role != content.RoleGuest {
		t.Fatalf("Role = %v, want guest fallback", viewer.Role)
	}
	if viewer.DisplayName() != "Ruth" {
		t.Fatalf("DisplayName() = %q, want Ruth", viewer.DisplayName())
	}
}
