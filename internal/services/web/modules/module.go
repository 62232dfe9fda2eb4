// Package modules composes the web feature modules.
package modules

import (
	"time"

	"github.com/louisbranch/sacredverses/internal/services/web/data"
	module "github.com/louisbranch/sacredverses/internal/services/web/module"
	"github.com/louisbranch/sacredverses/internal/services/web/modules/publicauth"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/upload"
	"go.uber.org/zap"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries what the registry hands to each module. Modules only
// see the narrow gateway they declare; *data.Hooks satisfies all of them.
type Dependencies struct {
	Hooks   *data.Hooks
	Base    modulehandler.Base
	Tracker *upload.Tracker
	Logger  *zap.Logger

	// Sessions verifies login tokens; nil disables sign-in.
	Sessions publicauth.Sessions
	Auth     publicauth.Config

	// Clock drives the daily verse date. Nil uses time.Now.
	Clock         func() time.Time
	UploadTimeout time.Duration
	Version       string
}

func (d Dependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
