package auth

import (
	"net/http"

	"github.com/louisbranch/lingo/internal/services/web/browser"
	"github.com/louisbranch/lingo/internal/services/web/form"
	module "github.com/louisbranch/lingo/internal/services/web/module"
	"github.com/louisbranch/lingo/internal/services/web/platform/httpx"
	"github.com/louisbranch/lingo/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
	"github.com/louisbranch/lingo/internal/services/web/runtime"
	webtemplates "github.com/louisbranch/lingo/internal/services/web/templates"
	"go.uber.org/zap"
)

// keySignedOut confirms an explicit sign out.
const keySignedOut = "notice.signed_out"

type handlers struct {
	modulehandler.Base
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps)}
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	in, err := parseLogin(w, r)
	if err != nil {
		h.Logger().Info("rejected login input", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		if wantsJSON(r) {
			_ = httpx.WriteJSONError(w, http.StatusBadRequest, "invalid login payload")
			return
		}
		notice := form.Warning(runtime.KeyLoginMissing)
		h.Redirect(w, r, routepath.Root, &notice)
		return
	}

	h.WithSession(w, r, func(b *browser.Binding) {
		result, err := b.Dispatch(httpx.RequestContext(r), runtime.Login{DisplayName: in.DisplayName, Token: in.Token})
		if err != nil {
			h.Logger().Warn("persist login", zap.String("session_id", b.ID), zap.Error(err))
		}
		jar := h.Deps().Browsers.Jar()
		s := b.Session()
		if s.LoggedIn() {
			jar.WriteToken(w, r, s.APIToken)
		} else {
			jar.ClearToken(w, r)
		}

		if wantsJSON(r) {
			if !s.LoggedIn() {
				message := ""
				if result.Notice != nil {
					message = webtemplates.TArgs(h.Localizer(r), result.Notice.Key, result.Notice.Args)
				}
				_ = httpx.WriteJSONError(w, http.StatusBadRequest, message)
				return
			}
			resp := loginResponse{DisplayName: s.DisplayName, CurrentTeamName: s.CurrentTeamName, IsTeamOwner: s.IsTeamOwner}
			if s.HasTeam() {
				teamID := s.CurrentTeamID
				resp.CurrentTeamID = &teamID
			}
			_ = httpx.WriteJSON(w, http.StatusOK, resp)
			return
		}
		h.Redirect(w, r, routepath.Root, result.Notice)
	})
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.WithSession(w, r, func(b *browser.Binding) {
		if _, err := b.Dispatch(httpx.RequestContext(r), runtime.Logout{}); err != nil {
			h.Logger().Warn("persist logout", zap.String("session_id", b.ID), zap.Error(err))
		}
		h.Deps().Browsers.Jar().ClearToken(w, r)
		notice := form.Info(keySignedOut)
		h.Redirect(w, r, routepath.Root, &notice)
	})
}

// handleLiveness signs the browser out once its token has expired. It
// answers 204 while the session is still usable.
func (h handlers) handleLiveness(w http.ResponseWriter, r *http.Request) {
	h.WithSession(w, r, func(b *browser.Binding) {
		if !b.Session().LoggedIn() {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		result, err := b.Dispatch(httpx.RequestContext(r), runtime.Tick{Now: h.Deps().Now()})
		if err != nil {
			h.Logger().Warn("persist liveness check", zap.String("session_id", b.ID), zap.Error(err))
		}
		if b.Session().LoggedIn() {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.Logger().Info("session token expired", zap.String("session_id", b.ID))
		h.Deps().Browsers.Jar().ClearToken(w, r)
		h.Redirect(w, r, routepath.Root, result.Notice)
	})
}
