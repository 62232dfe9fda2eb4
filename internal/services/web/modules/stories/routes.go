package stories

import (
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Stories, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.StoryPattern, h.handleDetail)
	mux.HandleFunc(http.MethodPost+" "+routepath.StoryImagePattern, h.handleUpload)
	mux.HandleFunc(http.MethodGet+" "+routepath.UploadPattern, h.handleUploadProgress)
	mux.HandleFunc(routepath.StoriesPrefix, h.handleNotFound)
	mux.HandleFunc(routepath.UploadsPrefix, h.handleNotFound)
}
