package pages

import (
	"net/http"

	"github.com/louisbranch/lingo/internal/services/web/browser"
	module "github.com/louisbranch/lingo/internal/services/web/module"
	"github.com/louisbranch/lingo/internal/services/web/platform/modulehandler"
)

type handlers struct {
	modulehandler.Base
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps)}
}

// handlePage renders whichever page the path names. Unknown paths get the
// 404 error state inside the app shell.
func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	h.WithSession(w, r, func(b *browser.Binding) {
		h.RenderRoute(w, r, b.Session(), r.URL.Path, r.URL.RawQuery, nil)
	})
}
