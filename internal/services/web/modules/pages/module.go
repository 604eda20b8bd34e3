// Package pages serves the full-page routes: dashboard, glossary,
// reflections and teams.
package pages

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/lingo/internal/services/web/module"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
)

// Module provides the page routes.
type Module struct {
	deps module.Dependencies
}

// New returns a pages module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "pages" }

// Mount wires page route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Browsers == nil {
		return module.Mount{}, errors.New("pages: browser manager is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.deps))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
