package testament

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/pagerender"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/sacredverses/internal/services/web/templates"
	"go.uber.org/zap"
)

const skeletonRows = 4

type handlers struct {
	modulehandler.Base
	gateway Gateway
	logger  *zap.Logger
}

func (h handlers) listHandler(testament content.Testament) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := h.Request(w, r)
		if h.IsPartial(r) {
			h.WriteFragment(w, r, http.StatusOK, h.listContent(r, req, testament))
			return
		}
		body := webtemplates.Skeleton(req.Loc, routepath.Partial(routepath.Testament(testament)), skeletonRows)
		if verses, ok := h.gateway.PeekVersesByTestament(testament); ok {
			body = webtemplates.TestamentContent(req.Loc, testament, verses)
		}
		title := webtemplates.TestamentTitle(req.Loc, testament)
		h.WritePage(w, r, req, title, http.StatusOK, webtemplates.ListPage(title, webtemplates.TestamentSubtitle(req.Loc, testament), body))
	}
}

func (h handlers) listContent(r *http.Request, req pagerender.Request, testament content.Testament) templ.Component {
	verses, err := h.gateway.VersesByTestament(r.Context(), h.Caller(r), testament)
	if err != nil {
		h.logger.Warn("load verses", zap.String("testament", string(testament)), zap.Error(err))
		return webtemplates.TestamentError(req.Loc)
	}
	return webtemplates.TestamentContent(req.Loc, testament, verses)
}

// handleVerse resolves /verse/{testament}-{index} against the same
// testament listing the cards were rendered from.
func (h handlers) handleVerse(w http.ResponseWriter, r *http.Request) {
	req := h.Request(w, r)
	testament, index, ok := routepath.ParseVerseRef(r.PathValue("ref"))
	if !ok {
		h.writeVerseNotFound(w, r, req, testament, http.StatusNotFound)
		return
	}
	verses, err := h.gateway.VersesByTestament(r.Context(), h.Caller(r), testament)
	if err != nil {
		h.logger.Warn("load verse", zap.String("testament", string(testament)), zap.Int("index", index), zap.Error(err))
		h.writeVerseNotFound(w, r, req, testament, apperrors.HTTPStatus(err))
		return
	}
	verse, ok := content.At(verses, index)
	if !ok {
		h.writeVerseNotFound(w, r, req, testament, http.StatusNotFound)
		return
	}
	h.WritePage(w, r, req, verse.Reference, http.StatusOK, webtemplates.VerseDetail(req.Loc, testament, verse))
}

func (h handlers) writeVerseNotFound(w http.ResponseWriter, r *http.Request, req pagerender.Request, testament content.Testament, statusCode int) {
	h.WritePage(w, r, req, webtemplates.T(req.Loc, "web.verse.not_found"), statusCode, webtemplates.VerseNotFound(req.Loc, testament))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
