// Package auth serves identity routes: sign in, sign out and the
// periodic token liveness check.
package auth

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/lingo/internal/services/web/module"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
)

// Module provides identity routes.
type Module struct {
	deps module.Dependencies
}

// New returns an auth module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "auth" }

// Mount wires auth route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Browsers == nil {
		return module.Mount{}, errors.New("auth: browser manager is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.deps))
	return module.Mount{Prefix: routepath.AuthPrefix, Handler: mux}, nil
}
