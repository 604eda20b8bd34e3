package fragments

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/lingo/internal/services/web/browser"
	module "github.com/louisbranch/lingo/internal/services/web/module"
	"github.com/louisbranch/lingo/internal/services/web/platform/modulehandler"
	webtemplates "github.com/louisbranch/lingo/internal/services/web/templates"
	"github.com/louisbranch/lingo/internal/services/web/view"
)

type handlers struct {
	modulehandler.Base
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps)}
}

// render loads the data planned for the bound session and writes the
// fragment body builds from it.
func (h handlers) render(w http.ResponseWriter, r *http.Request, plan func(*browser.Binding) (view.Request, bool), body func(view.Model, webtemplates.Localizer) templ.Component) {
	h.WithSession(w, r, func(b *browser.Binding) {
		req, ok := plan(b)
		if !ok {
			http.NotFound(w, r)
			return
		}
		model := h.Load(r, req, b.Session())
		h.WriteFragment(w, r, http.StatusOK, body(model, h.Localizer(r)))
	})
}

func (h handlers) handleWords(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, func(b *browser.Binding) (view.Request, bool) {
		return wordsPlan(b.Session()), true
	}, func(m view.Model, loc webtemplates.Localizer) templ.Component {
		return webtemplates.WordsList(m.Words, m.Request.NeedsTeam, loc)
	})
}

func (h handlers) handleMeanings(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, func(b *browser.Binding) (view.Request, bool) {
		return meaningsPlan(r.URL.RawQuery, b.Session()), true
	}, func(m view.Model, loc webtemplates.Localizer) templ.Component {
		return webtemplates.MeaningsTable(m.Meanings, m.Request.SelectedWordID, loc)
	})
}

func (h handlers) handleReflections(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, func(b *browser.Binding) (view.Request, bool) {
		return reflectionsPlan(r.URL.RawQuery, b.Session()), true
	}, func(m view.Model, loc webtemplates.Localizer) templ.Component {
		return webtemplates.ReflectionsTable(m.Reflections, m.Request.SelectedWordID, loc)
	})
}

// handleTeamMembers is only served to team owners.
func (h handlers) handleTeamMembers(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, func(b *browser.Binding) (view.Request, bool) {
		req := teamMembersPlan(b.Session())
		return req, req.ShowTeamMembers
	}, func(m view.Model, loc webtemplates.Localizer) templ.Component {
		return webtemplates.TeamMembers(m.Team, m.Session.HasTeam(), loc)
	})
}
