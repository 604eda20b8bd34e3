package auth

import (
	"net/http"

	"github.com/louisbranch/lingo/internal/services/web/platform/httpx"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.AuthSession, h.handleLogin)
	mux.HandleFunc(routepath.AuthSession, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.AuthLogout, h.handleLogout)
	mux.HandleFunc(routepath.AuthLogout, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.AuthLiveness, h.handleLiveness)
	mux.HandleFunc(routepath.AuthLiveness, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.AuthPrefix+"{rest...}", http.NotFound)
}
