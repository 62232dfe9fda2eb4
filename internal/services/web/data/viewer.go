package data

import (
	"context"
	"fmt"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"golang.org/x/sync/errgroup"
)

// Viewer is the identity chrome rendered in the layout header.
type Viewer struct {
	Caller  content.Caller
	Profile content.Option[content.UserProfile]
	Role    content.Role
	IsAdmin bool
}

// SignedIn reports whether the viewer has a session.
func (v Viewer) SignedIn() bool {
	return !v.Caller.IsAnonymous()
}

// NeedsProfile reports whether a signed-in viewer has not set a profile yet.
func (v Viewer) NeedsProfile() bool {
	return v.SignedIn() && !v.Profile.IsSome()
}

// DisplayName returns the profile name, falling back to the principal.
func (v Viewer) DisplayName() string {
	if profile, ok := v.Profile.Get(); ok && profile.Name != "" {
		return profile.Name
	}
	return v.Caller.Key()
}

// Viewer loads profile, role and admin status concurrently. Anonymous callers
// resolve to guests without backend calls. A failed lookup leaves its field at
// the guest default while the others still fill in; the first failure is
// returned with the partial viewer.
func (h *Hooks) Viewer(ctx context.Context, caller content.Caller) (Viewer, error) {
	viewer := Viewer{
		Caller:  caller,
		Profile: content.None[content.UserProfile](),
		Role:    content.RoleGuest,
	}
	if caller.IsAnonymous() {
		return viewer, nil
	}

	// A plain group so one failed lookup does not cancel the others.
	var g errgroup.Group
	g.Go(func() error {
		profile, err := h.CallerProfile(ctx, caller)
		if err != nil {
			return fmt.Errorf("load caller profile: %w", err)
		}
		viewer.Profile = profile
		return nil
	})
	g.Go(func() error {
		role, err := h.CallerRole(ctx, caller)
		if err != nil {
			return fmt.Errorf("load caller role: %w", err)
		}
		viewer.Role = role
		return nil
	})
	g.Go(func() error {
		isAdmin, err := h.IsCallerAdmin(ctx, caller)
		if err != nil {
			return fmt.Errorf("load admin status: %w", err)
		}
		viewer.IsAdmin = isAdmin
		return nil
	})
	err := g.Wait()
	return viewer, err
}
