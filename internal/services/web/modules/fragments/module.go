// Package fragments serves the live regions htmx reloads when a signal
// fires: the words list, the meanings and reflections tables, and the
// team members panel.
package fragments

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/lingo/internal/services/web/module"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
)

// Module provides fragment routes.
type Module struct {
	deps module.Dependencies
}

// New returns a fragments module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "fragments" }

// Mount wires fragment route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Browsers == nil {
		return module.Mount{}, errors.New("fragments: browser manager is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.deps))
	return module.Mount{Prefix: routepath.FragmentsPrefix, Handler: mux}, nil
}
