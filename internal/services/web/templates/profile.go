package templates

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// PublicProfileView is the input of PublicProfile.
type PublicProfileView struct {
	Principal string
	Profile   content.UserProfile
	// CanAssignRole shows the admin role form.
	CanAssignRole bool
	CSRFToken     string
}

// PublicProfile renders another user's profile.
func PublicProfile(loc Localizer, view PublicProfileView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="container narrow"><article class="card detail"><h1>`)
		h.text(view.Profile.Name)
		h.raw(`</h1><p class="muted">`)
		h.text(view.Principal)
		h.raw(`</p>`)
		if view.CanAssignRole {
			h.render(RoleForm(loc, view.Principal, view.CSRFToken))
		}
		h.raw(`</article></div>`)
	})
}

// RoleForm lets an admin assign a role to principal.
func RoleForm(loc Localizer, principal string, csrfToken string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<form method="post" class="role-form"`)
		h.attr("action", routepath.AdminRoles)
		h.raw(`><h2>`)
		h.text(T(loc, "web.admin.roles_title"))
		h.raw(`</h2>`)
		h.csrfField(csrfToken)
		h.raw(`<input type="hidden" name="principal"`)
		h.attr("value", principal)
		h.raw(`><label for="role-select">`)
		h.text(T(loc, "web.admin.role_label"))
		h.raw(`</label><select id="role-select" name="role">`)
		for _, role := range []content.Role{content.RoleGuest, content.RoleUser, content.RoleAdmin} {
			h.raw(`<option`)
			h.attr("value", string(role))
			h.raw(`>`)
			h.text(T(loc, "web.role."+string(role)))
			h.raw(`</option>`)
		}
		h.raw(`</select><button type="submit" class="btn btn-primary">`)
		h.text(T(loc, "web.admin.assign"))
		h.raw(`</button></form>`)
	})
}

// UserNotFound renders a missing public profile.
func UserNotFound(loc Localizer) templ.Component {
	return NotFound(T(loc, "web.user.not_found"), routepath.Root, T(loc, "web.error.back_home"))
}
