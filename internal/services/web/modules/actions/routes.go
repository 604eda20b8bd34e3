package actions

import (
	"net/http"

	"github.com/louisbranch/lingo/internal/services/web/routepath"
	"github.com/louisbranch/lingo/internal/services/web/signal"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.ActionWords, h.submitHandler(signal.Words))
	mux.HandleFunc(http.MethodPost+" "+routepath.ActionMeanings, h.submitHandler(signal.Meanings))
	mux.HandleFunc(http.MethodPost+" "+routepath.ActionReflections, h.submitHandler(signal.Reflections))
	mux.HandleFunc(http.MethodPost+" "+routepath.ActionTeam, h.handleSelectTeam)
	mux.HandleFunc(routepath.ActionsPrefix+"{rest...}", http.NotFound)
}
