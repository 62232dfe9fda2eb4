package stories

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/shared/htmx"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/data"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/httpx"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/pagerender"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/weberror"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/sacredverses/internal/services/web/templates"
	"github.com/louisbranch/sacredverses/internal/services/web/upload"
	"go.uber.org/zap"
)

const (
	uploadField = "image"

	// statusStopPolling tells HTMX to stop an hx-trigger="every" poll.
	statusStopPolling = 286
	skeletonRows      = 3
)

type handlers struct {
	modulehandler.Base
	gateway       Gateway
	tracker       *upload.Tracker
	uploadTimeout time.Duration
	logger        *zap.Logger
}

func newHandlers(m Module) handlers {
	return handlers{
		Base:          m.base,
		gateway:       m.gateway,
		tracker:       m.tracker,
		uploadTimeout: m.uploadTimeout,
		logger:        m.logger,
	}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	req := h.Request(w, r)
	if h.IsPartial(r) {
		h.WriteFragment(w, r, http.StatusOK, h.listContent(r, req))
		return
	}
	body := webtemplates.Skeleton(req.Loc, routepath.Partial(routepath.Stories), skeletonRows)
	if stories, ok := h.gateway.PeekStories(); ok {
		body = webtemplates.StoriesContent(req.Loc, stories)
	}
	title := webtemplates.T(req.Loc, "web.stories.title")
	h.WritePage(w, r, req, title, http.StatusOK, webtemplates.ListPage(title, webtemplates.T(req.Loc, "web.stories.subtitle"), body))
}

func (h handlers) listContent(r *http.Request, req pagerender.Request) templ.Component {
	stories, err := h.gateway.Stories(r.Context(), h.Caller(r))
	if err != nil {
		h.logger.Warn("load stories", zap.Error(err))
		return webtemplates.StoriesError(req.Loc)
	}
	return webtemplates.StoriesContent(req.Loc, stories)
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	req := h.Request(w, r)
	caller := h.Caller(r)
	index, ok := routepath.ParseIndex(r.PathValue("index"))
	if !ok {
		h.writeStoryNotFound(w, r, req, http.StatusNotFound)
		return
	}
	stories, err := h.gateway.Stories(r.Context(), caller)
	if err != nil {
		h.logger.Warn("load story", zap.Int("index", index), zap.Error(err))
		h.writeStoryNotFound(w, r, req, apperrors.HTTPStatus(err))
		return
	}
	story, ok := content.At(stories, index)
	if !ok {
		h.writeStoryNotFound(w, r, req, http.StatusNotFound)
		return
	}

	view := webtemplates.StoryDetailView{
		Index: index,
		Story: story,
		Upload: webtemplates.UploadSectionView{
			Index:     index,
			Title:     webtemplates.T(req.Loc, "web.story.image_heading"),
			Image:     story.Image,
			IsAdmin:   h.isAdmin(r, caller),
			CSRFToken: req.CSRFToken,
		},
	}
	if id := r.URL.Query().Get(routepath.UploadQueryKey); id != "" && view.Upload.IsAdmin {
		if progress, ok := h.tracker.Get(id, caller.Key()); ok {
			pv := progressView(progress)
			view.Upload.Progress = &pv
		}
	}
	h.WritePage(w, r, req, story.Title, http.StatusOK, webtemplates.StoryDetail(req.Loc, view))
}

func (h handlers) handleUpload(w http.ResponseWriter, r *http.Request) {
	req := h.Request(w, r)
	caller := h.Caller(r)
	index, ok := routepath.ParseIndex(r.PathValue("index"))
	if !ok {
		h.WriteNotFound(w, r)
		return
	}
	if caller.IsAnonymous() {
		h.WriteError(w, r, apperrors.EK(apperrors.KindUnauthorized, "error.backend.unauthenticated", "sign in to upload images"))
		return
	}

	isAdmin, err := h.gateway.IsCallerAdmin(r.Context(), caller)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if !isAdmin {
		h.WriteError(w, r, apperrors.EK(apperrors.KindForbidden, "error.backend.forbidden", "admin role required"))
		return
	}

	img, err := readUpload(w, r)
	if err != nil {
		h.writeUploadRejected(w, r, req, index, err)
		return
	}
	stories, err := h.gateway.Stories(r.Context(), caller)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if _, ok := content.At(stories, index); !ok {
		h.WriteNotFound(w, r)
		return
	}

	id := h.tracker.Go(r.Context(), caller.Key(), h.uploadTimeout, func(ctx context.Context, report content.ProgressFunc) error {
		return h.gateway.UploadImage(ctx, caller, data.ImageUpload{
			Image:   img.WithUploadProgress(report),
			IsStory: true,
			Index:   index,
		})
	})
	h.logger.Info("image upload started", zap.String("upload_id", id), zap.Int("story", index), zap.String("principal", caller.Key()))

	if httpx.IsHTMXRequest(r) {
		h.WriteFragment(w, r, http.StatusOK, webtemplates.UploadProgress(req.Loc, webtemplates.UploadProgressView{
			ID:     id,
			Status: webtemplates.UploadUploading,
		}))
		return
	}
	h.Redirect(w, r, routepath.StoryWithUpload(index, id), routepath.Story(index))
}

func (h handlers) handleUploadProgress(w http.ResponseWriter, r *http.Request) {
	req := h.Request(w, r)
	id := r.PathValue("id")
	progress, ok := h.tracker.Get(id, h.Caller(r).Key())
	if !ok {
		if !httpx.IsHTMXRequest(r) {
			h.WriteNotFound(w, r)
			return
		}
		progress = upload.Progress{ID: id, Status: upload.StatusFailed}
	}

	statusCode := http.StatusOK
	if progress.Finished() {
		statusCode = statusStopPolling
		if progress.Status == upload.StatusDone {
			htmx.Refresh(w)
		}
	}
	h.WriteFragment(w, r, statusCode, webtemplates.UploadProgress(req.Loc, progressView(progress)))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

// writeUploadRejected answers HTMX with an inline alert and re-renders the
// story page otherwise.
func (h handlers) writeUploadRejected(w http.ResponseWriter, r *http.Request, req pagerender.Request, index int, err error) {
	message := weberror.PublicMessage(req.Loc, err)
	if httpx.IsHTMXRequest(r) {
		h.WriteFragment(w, r, http.StatusOK, webtemplates.Alert(webtemplates.AlertError, message))
		return
	}
	stories, fetchErr := h.gateway.Stories(r.Context(), h.Caller(r))
	story, ok := content.At(stories, index)
	if fetchErr != nil || !ok {
		h.WriteError(w, r, err)
		return
	}
	h.WritePage(w, r, req, story.Title, apperrors.HTTPStatus(err), webtemplates.StoryDetail(req.Loc, webtemplates.StoryDetailView{
		Index: index,
		Story: story,
		Upload: webtemplates.UploadSectionView{
			Index:     index,
			Title:     webtemplates.T(req.Loc, "web.story.image_heading"),
			Image:     story.Image,
			IsAdmin:   h.isAdmin(r, h.Caller(r)),
			CSRFToken: req.CSRFToken,
			Error:     message,
		},
	}))
}

func (h handlers) writeStoryNotFound(w http.ResponseWriter, r *http.Request, req pagerender.Request, statusCode int) {
	h.WritePage(w, r, req, webtemplates.T(req.Loc, "web.story.not_found"), statusCode, webtemplates.StoryNotFound(req.Loc))
}

func (h handlers) isAdmin(r *http.Request, caller content.Caller) bool {
	if caller.IsAnonymous() {
		return false
	}
	isAdmin, err := h.gateway.IsCallerAdmin(r.Context(), caller)
	if err != nil {
		h.logger.Warn("resolve admin status", zap.String("principal", caller.Key()), zap.Error(err))
		return false
	}
	return isAdmin
}

func readUpload(w http.ResponseWriter, r *http.Request) (*content.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxRequestBytes)
	file, _, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apperrors.EK(apperrors.KindInvalidInput, "error.upload.too_large", "image must be 5MB or smaller")
		}
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "error.upload.missing", "image is required", err)
	}
	defer file.Close()
	return upload.Read(file)
}

func progressView(p upload.Progress) webtemplates.UploadProgressView {
	return webtemplates.UploadProgressView{
		ID:      p.ID,
		Percent: p.Percent,
		Status:  string(p.Status),
	}
}
