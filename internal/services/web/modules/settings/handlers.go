package settings

import (
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	flashnotice "github.com/louisbranch/sacredverses/internal/services/web/platform/flash"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

type handlers struct {
	modulehandler.Base
	gateway Gateway
}

// handleSaveProfile stores the submitted name and returns to the page the
// prompt was shown on.
func (h handlers) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	next := r.PostFormValue(routepath.NextQueryKey)
	err := h.gateway.SaveProfile(r.Context(), h.Caller(r), content.UserProfile{Name: r.PostFormValue("name")})
	if err != nil {
		h.FlashError(w, r, err)
	} else {
		h.Flash(w, r, flashnotice.Success("web.profile.notice_saved"))
	}
	h.Redirect(w, r, next, routepath.Root)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
