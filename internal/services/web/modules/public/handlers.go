package public

import (
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	webtemplates "github.com/louisbranch/sacredverses/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
}

func newHandlers(base modulehandler.Base) handlers {
	return handlers{Base: base}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	req := h.Request(w, r)
	h.WritePage(w, r, req, webtemplates.T(req.Loc, "web.home.title"), http.StatusOK, webtemplates.Home(req.Loc))
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
