// Package module defines the feature contract used by web composition.
package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Mount describes where a module's handler serves. Each prefix is
// registered on the root mux as-is; the handler routes full paths.
type Mount struct {
	Prefixes []string
	Handler  http.Handler
}

// Validate reports a mount without a handler or prefixes.
func (m Mount) Validate() error {
	if m.Handler == nil {
		return fmt.Errorf("mount handler is required")
	}
	if len(m.Prefixes) == 0 {
		return fmt.Errorf("mount prefix is required")
	}
	for _, prefix := range m.Prefixes {
		if !strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("mount prefix %q must start with /", prefix)
		}
	}
	return nil
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}
