// Package actions serves the create forms and the team switch.
package actions

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/lingo/internal/services/web/module"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
)

// Module provides signed-in mutation routes.
type Module struct {
	deps module.Dependencies
}

// New returns an actions module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "actions" }

// Mount wires action route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Browsers == nil {
		return module.Mount{}, errors.New("actions: browser manager is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.deps))
	return module.Mount{Prefix: routepath.ActionsPrefix, Handler: mux}, nil
}
