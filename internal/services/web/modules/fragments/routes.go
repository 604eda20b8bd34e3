package fragments

import (
	"net/http"

	"github.com/louisbranch/lingo/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.FragmentWords, h.handleWords)
	mux.HandleFunc(http.MethodGet+" "+routepath.FragmentMeanings, h.handleMeanings)
	mux.HandleFunc(http.MethodGet+" "+routepath.FragmentReflections, h.handleReflections)
	mux.HandleFunc(http.MethodGet+" "+routepath.FragmentTeamMembers, h.handleTeamMembers)
	mux.HandleFunc(http.MethodGet+" "+routepath.FragmentsPrefix+"{rest...}", http.NotFound)
}
