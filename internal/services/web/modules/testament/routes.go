package testament

import (
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.OldTestament, h.listHandler(content.TestamentOld))
	mux.HandleFunc(http.MethodGet+" "+routepath.NewTestament, h.listHandler(content.TestamentNew))
	mux.HandleFunc(http.MethodGet+" "+routepath.VersePattern, h.handleVerse)
	mux.HandleFunc(routepath.VersePrefix, h.handleNotFound)
}
