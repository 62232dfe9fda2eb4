package admin

import (
	"net/http"
	"strings"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	flashnotice "github.com/louisbranch/sacredverses/internal/services/web/platform/flash"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

type handlers struct {
	modulehandler.Base
	gateway Gateway
}

func (h handlers) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	principal := strings.TrimSpace(r.PostFormValue("principal"))
	role := content.Role(strings.TrimSpace(r.PostFormValue("role")))
	if err := h.gateway.AssignRole(r.Context(), h.Caller(r), principal, role); err != nil {
		h.FlashError(w, r, err)
	} else {
		h.Flash(w, r, flashnotice.Success("web.admin.notice_assigned"))
	}
	target := routepath.Root
	if principal != "" {
		target = routepath.UserProfile(principal)
	}
	h.Redirect(w, r, target, routepath.Root)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
