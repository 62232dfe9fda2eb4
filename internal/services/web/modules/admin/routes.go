package admin

import (
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminRoles, h.handleAssignRole)
	mux.HandleFunc(routepath.AdminPrefix, h.handleNotFound)
}
