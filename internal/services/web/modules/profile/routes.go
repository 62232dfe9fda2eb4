package profile

import (
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.UserPattern, h.handleProfile)
	mux.HandleFunc(routepath.UserProfilePrefix, h.handleNotFound)
}
