package actions

import (
	"net/http"

	"github.com/louisbranch/lingo/internal/services/web/browser"
	"github.com/louisbranch/lingo/internal/services/web/form"
	module "github.com/louisbranch/lingo/internal/services/web/module"
	"github.com/louisbranch/lingo/internal/services/web/platform/httpx"
	"github.com/louisbranch/lingo/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
	"github.com/louisbranch/lingo/internal/services/web/runtime"
	"github.com/louisbranch/lingo/internal/services/web/signal"
	webtemplates "github.com/louisbranch/lingo/internal/services/web/templates"
	"go.uber.org/zap"
)

type handlers struct {
	modulehandler.Base
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps)}
}

// submitHandler posts one of the create forms.
//
// htmx callers get the form back with an out-of-band notice, and the
// HX-Trigger header names the lists that must reload. Plain form posts
// redirect on success and re-render the page with the draft otherwise.
// A submit that arrives while the same form is still being sent for the
// session is answered at once and sends nothing.
func (h handlers) submitHandler(kind signal.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields := parseFields(w, r, kind)
		done, claimed := h.Deps().Browsers.BeginSubmit(r, kind)
		defer done()
		if !claimed {
			h.rejectInFlight(w, r, kind, fields)
			return
		}
		h.WithSession(w, r, func(b *browser.Binding) {
			result, err := b.Dispatch(httpx.RequestContext(r), runtime.Submit{Kind: kind, Fields: fields})
			if err != nil {
				h.Logger().Warn("persist submit", zap.String("session_id", b.ID), zap.Error(err))
			}
			s := b.Session()
			var notices []form.Notice
			if result.Notice != nil {
				notices = append(notices, *result.Notice)
			}

			if httpx.IsHTMXRequest(r) {
				httpx.SetTrigger(w, signal.Events(result.Triggered)...)
				locked := !s.HasTeam()
				if kind != signal.Words {
					locked = result.Fields.WordID == form.NoWord
				}
				loc := h.Localizer(r)
				h.WriteFragment(w, r, http.StatusOK, webtemplates.EntryForm(kind, result.Fields, locked, loc), notices...)
				return
			}

			path, rawQuery, location := pageFor(kind, result.Fields.WordID)
			if result.Notice != nil && result.Notice.Level == form.LevelSuccess {
				h.Redirect(w, r, location, result.Notice)
				return
			}
			drafts := webtemplates.Drafts{kind: result.Fields}
			h.RenderRoute(w, r, s, path, rawQuery, drafts, notices...)
		})
	}
}

func (h handlers) rejectInFlight(w http.ResponseWriter, r *http.Request, kind signal.Kind, fields form.Fields) {
	notice := form.Warning(form.KeySubmitInFlight)
	if httpx.IsHTMXRequest(r) {
		locked := kind != signal.Words && fields.WordID == form.NoWord
		h.WriteFragment(w, r, http.StatusOK, webtemplates.EntryForm(kind, fields, locked, h.Localizer(r)), notice)
		return
	}
	_, _, location := pageFor(kind, fields.WordID)
	h.Redirect(w, r, location, &notice)
}

func (h handlers) handleSelectTeam(w http.ResponseWriter, r *http.Request) {
	teamID := parseTeamID(w, r)
	h.WithSession(w, r, func(b *browser.Binding) {
		result, err := b.Dispatch(httpx.RequestContext(r), runtime.SelectTeam{TeamID: teamID})
		if err != nil {
			h.Logger().Warn("persist team selection", zap.String("session_id", b.ID), zap.Error(err))
		}
		h.Redirect(w, r, routepath.Teams, result.Notice)
	})
}
