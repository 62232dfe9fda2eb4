package publicauth

import (
	"net/http"

	flashnotice "github.com/louisbranch/sacredverses/internal/services/web/platform/flash"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

type handlers struct {
	modulehandler.Base
	service service
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get(routepath.NextQueryKey)
	if !h.Caller(r).IsAnonymous() {
		h.Redirect(w, r, next, routepath.Root)
		return
	}
	target, err := h.service.providerURL(r, next)
	if err != nil {
		h.FlashError(w, r, err)
		h.Redirect(w, r, next, routepath.Root)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h handlers) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	token := query.Get(tokenQueryKey)
	expires, err := h.service.verify(token)
	if err != nil {
		h.FlashError(w, r, err)
		h.Redirect(w, r, routepath.Root, routepath.Root)
		return
	}
	h.service.sessions.SetCookie(w, r, token, expires)
	h.Flash(w, r, flashnotice.Success("web.session.notice_signed_in"))
	h.Redirect(w, r, query.Get(routepath.NextQueryKey), routepath.Root)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.service.sessions.ClearCookie(w, r)
	h.Flash(w, r, flashnotice.Info("web.session.notice_signed_out"))
	h.Redirect(w, r, routepath.Root, routepath.Root)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
