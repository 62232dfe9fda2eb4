package dailyverse

import (
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.DailyVerse, h.handlePage)
	mux.HandleFunc(http.MethodPost+" "+routepath.DailyVerseRefresh, h.handleRefresh)
	mux.HandleFunc(routepath.DailyVerse+"/", h.handleNotFound)
}
