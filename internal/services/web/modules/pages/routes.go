package pages

import (
	"net/http"

	"github.com/louisbranch/lingo/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root, h.handlePage)
}
