package app

import (
	"net/http"
)

// BuildRootHandler composes a root mux using the configured module groups.
// A nil authRequired falls back to the browser manager's signed-in check.
func BuildRootHandler(cfg Config, authRequired func(*http.Request) bool) (http.Handler, error) {
	deps := cfg.Dependencies.WithDefaults()
	if authRequired == nil && deps.Browsers != nil {
		authRequired = deps.Browsers.SignedIn
	}
	return Compose(ComposeInput{
		AuthRequired:        authRequired,
		PublicModules:       cfg.PublicModules,
		ProtectedModules:    cfg.ProtectedModules,
		RequestSchemePolicy: deps.Policy,
	})
}
