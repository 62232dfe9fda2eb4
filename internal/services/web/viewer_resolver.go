package web

import (
	"context"
	"net/http"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/data"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/session"
	webtemplates "github.com/louisbranch/sacredverses/internal/services/web/templates"
	"go.uber.org/zap"
)

// ViewerSource loads the identity shown in the layout header.
type ViewerSource interface {
	Viewer(ctx context.Context, caller content.Caller) (data.Viewer, error)
}

// viewerResolver maps the session caller to layout chrome. Lookup failures
// degrade to whatever fields resolved and suppress the profile prompt.
type viewerResolver struct {
	source ViewerSource
	logger *zap.Logger
}

func newViewerResolver(source ViewerSource, logger *zap.Logger) viewerResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return viewerResolver{source: source, logger: logger}
}

func (v viewerResolver) resolveChrome(r *http.Request) webtemplates.Chrome {
	caller := session.CallerFromRequest(r)
	if caller.IsAnonymous() || v.source == nil {
		return webtemplates.Chrome{Role: content.RoleGuest}
	}
	viewer, err := v.source.Viewer(r.Context(), caller)
	if err != nil {
		v.logger.Warn("resolve viewer",
			zap.String("principal", caller.Key()),
			zap.Error(err),
		)
	}
	return webtemplates.Chrome{
		SignedIn:     viewer.SignedIn(),
		DisplayName:  viewer.DisplayName(),
		Role:         viewer.Role,
		NeedsProfile: err == nil && viewer.NeedsProfile(),
	}
}
