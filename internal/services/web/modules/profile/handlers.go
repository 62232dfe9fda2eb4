package profile

import (
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/sacredverses/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	gateway Gateway
}

func (h handlers) handleProfile(w http.ResponseWriter, r *http.Request) {
	req := h.Request(w, r)
	caller := h.Caller(r)
	principal := strings.TrimSpace(r.PathValue("principal"))

	profile, err := h.gateway.UserProfile(r.Context(), caller, principal)
	if err != nil && !apperrors.Is(err, apperrors.KindNotFound) {
		h.WritePage(w, r, req, webtemplates.T(req.Loc, "web.user.title"), apperrors.HTTPStatus(err),
			webtemplates.NotFound(webtemplates.T(req.Loc, "web.user.error"), routepath.Root, webtemplates.T(req.Loc, "web.error.back_home")))
		return
	}
	found, ok := profile.Get()
	if err != nil || !ok {
		h.WritePage(w, r, req, webtemplates.T(req.Loc, "web.user.not_found"), http.StatusNotFound, webtemplates.UserNotFound(req.Loc))
		return
	}

	canAssign := false
	if !caller.IsAnonymous() {
		canAssign, _ = h.gateway.IsCallerAdmin(r.Context(), caller)
	}
	h.WritePage(w, r, req, found.Name, http.StatusOK, webtemplates.PublicProfile(req.Loc, webtemplates.PublicProfileView{
		Principal:     principal,
		Profile:       found,
		CanAssignRole: canAssign,
		CSRFToken:     req.CSRFToken,
	}))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
