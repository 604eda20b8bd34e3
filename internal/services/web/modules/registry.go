package modules

import (
	"github.com/louisbranch/lingo/internal/services/web/modules/actions"
	"github.com/louisbranch/lingo/internal/services/web/modules/auth"
	"github.com/louisbranch/lingo/internal/services/web/modules/fragments"
	"github.com/louisbranch/lingo/internal/services/web/modules/pages"
)

// DefaultPublicModules returns modules served to every browser. Pages
// render a sign-in prompt themselves when a route needs an identity.
func DefaultPublicModules(deps Dependencies) []Module {
	return []Module{
		pages.New(deps),
		auth.New(deps),
	}
}

// DefaultProtectedModules returns modules that require a signed-in browser.
func DefaultProtectedModules(deps Dependencies) []Module {
	return []Module{
		actions.New(deps),
		fragments.New(deps),
	}
}
