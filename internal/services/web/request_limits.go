package web

import (
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/httpx"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	"github.com/louisbranch/sacredverses/internal/services/web/upload"
)

// maxFormRequestBytes caps every unsafe request body except image uploads.
const maxFormRequestBytes = 1 << 20

// limitRequestBodies caps request bodies before anything parses them. It
// runs ahead of CSRF protection, which reads the form to find the token.
// Bodies that declare an oversized length are rejected without being read.
func limitRequestBodies(base modulehandler.Base) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody || isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			limit := int64(maxFormRequestBytes)
			tooLarge := apperrors.EK(apperrors.KindInvalidInput, "error.request.too_large", "request body too large")
			if isImageUploadPath(r.URL.Path) {
				limit = upload.MaxRequestBytes
				tooLarge = apperrors.EK(apperrors.KindInvalidInput, "error.upload.too_large", "image must be 5MB or smaller")
			}
			if r.ContentLength > limit {
				w.Header().Set("Connection", "close")
				base.WriteError(w, r, tooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

// isImageUploadPath matches routepath.StoryImagePattern.
func isImageUploadPath(path string) bool {
	rest, ok := strings.CutPrefix(path, routepath.StoriesPrefix)
	if !ok {
		return false
	}
	index, ok := strings.CutSuffix(rest, "/image")
	if !ok {
		return false
	}
	_, ok = routepath.ParseIndex(index)
	return ok
}
