package dailyverse

import (
	"context"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/httpx"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/pagerender"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/sacredverses/internal/services/web/templates"
	"go.uber.org/zap"
)

const skeletonRows = 1

type handlers struct {
	modulehandler.Base
	gateway Gateway
	logger  *zap.Logger
	now     func() time.Time
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	req := h.Request(w, r)
	if h.IsPartial(r) {
		h.WriteFragment(w, r, http.StatusOK, h.content(r, req, h.gateway.DailyVerse))
		return
	}
	body := webtemplates.Skeleton(req.Loc, routepath.Partial(routepath.DailyVerse), skeletonRows)
	if verse, ok := h.gateway.PeekDailyVerse(); ok {
		body = webtemplates.DailyVerseContent(req.Loc, verse, req.CSRFToken)
	}
	title := webtemplates.T(req.Loc, "web.daily.title")
	h.WritePage(w, r, req, title, http.StatusOK, webtemplates.ListPage(title, webtemplates.LongDate(req.Loc, h.now()), body))
}

// handleRefresh discards the cached verse and fetches it again.
func (h handlers) handleRefresh(w http.ResponseWriter, r *http.Request) {
	req := h.Request(w, r)
	if httpx.IsHTMXRequest(r) {
		h.WriteFragment(w, r, http.StatusOK, h.content(r, req, h.gateway.RefreshDailyVerse))
		return
	}
	if _, err := h.gateway.RefreshDailyVerse(r.Context(), h.Caller(r)); err != nil {
		h.logger.Warn("refresh daily verse", zap.Error(err))
	}
	h.Redirect(w, r, routepath.DailyVerse, routepath.DailyVerse)
}

func (h handlers) content(r *http.Request, req pagerender.Request, load func(context.Context, content.Caller) (content.Verse, error)) templ.Component {
	verse, err := load(r.Context(), h.Caller(r))
	if err != nil {
		h.logger.Warn("load daily verse", zap.Error(err))
		return webtemplates.DailyVerseError(req.Loc)
	}
	return webtemplates.DailyVerseContent(req.Loc, verse, req.CSRFToken)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
