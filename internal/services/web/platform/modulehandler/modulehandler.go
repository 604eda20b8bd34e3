// Package modulehandler provides a composable base for web module handlers.
//
// Every module binds the browser session, renders through the shared page
// and error writers, and persists session changes. Modules embed Base
// rather than repeating that scaffold.
package modulehandler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/lingo/internal/services/web/browser"
	"github.com/louisbranch/lingo/internal/services/web/form"
	webi18n "github.com/louisbranch/lingo/internal/services/web/i18n"
	module "github.com/louisbranch/lingo/internal/services/web/module"
	apperrors "github.com/louisbranch/lingo/internal/services/web/platform/errors"
	"github.com/louisbranch/lingo/internal/services/web/platform/flash"
	"github.com/louisbranch/lingo/internal/services/web/platform/httpx"
	"github.com/louisbranch/lingo/internal/services/web/platform/pagerender"
	"github.com/louisbranch/lingo/internal/services/web/platform/weberror"
	"github.com/louisbranch/lingo/internal/services/web/session"
	webtemplates "github.com/louisbranch/lingo/internal/services/web/templates"
	"github.com/louisbranch/lingo/internal/services/web/view"
	"go.uber.org/zap"
)

// Base carries the shared dependencies used by module handlers.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from deps.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps.WithDefaults()}
}

// Deps returns the module dependencies.
func (b Base) Deps() module.Dependencies {
	return b.deps
}

// Logger returns the module logger.
func (b Base) Logger() *zap.Logger {
	return b.deps.Logger
}

// Localizer resolves the message printer for r.
func (b Base) Localizer(r *http.Request) webtemplates.Localizer {
	loc, _ := webi18n.ForRequest(r)
	return loc
}

// WithSession binds the browser session for the duration of fn and saves
// any change it made. Bind failures render a 503 page.
func (b Base) WithSession(w http.ResponseWriter, r *http.Request, fn func(*browser.Binding)) {
	binding, release, err := b.deps.Browsers.Bind(w, r)
	if err != nil {
		b.deps.Logger.Error("bind browser session", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		b.WriteError(w, r, apperrors.Wrap(apperrors.KindUnavailable, "bind browser session", err), session.Empty())
		return
	}
	defer release()
	fn(binding)
	if err := binding.Save(httpx.RequestContext(r)); err != nil {
		b.deps.Logger.Warn("save browser session", zap.String("session_id", binding.ID), zap.Error(err))
	}
}

// WritePage renders a full or htmx page.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.Write(w, r, page, b.deps.Policy); err != nil {
		b.deps.Logger.Error("render page", zap.String("path", r.URL.Path), zap.Error(err))
		b.WriteError(w, r, err, page.Session)
	}
}

// RenderRoute resolves path and rawQuery for s, loads the page data and
// renders it. drafts pre-fill forms; notices are shown with the page.
func (b Base) RenderRoute(w http.ResponseWriter, r *http.Request, s session.Session, path, rawQuery string, drafts webtemplates.Drafts, notices ...form.Notice) {
	req := view.Resolve(path, rawQuery, s)
	if !req.Found() {
		b.WriteNotFound(w, r, s)
		return
	}
	if req.QueryProblem != "" {
		notices = append(notices, form.Warning(req.QueryProblem))
	}
	model := b.Load(r, req, s)
	loc := b.Localizer(r)
	b.WritePage(w, r, pagerender.Page{
		Title:   webtemplates.T(loc, req.Route.TitleKey()),
		Route:   req.Route,
		Session: s,
		Notices: notices,
		Body:    webtemplates.Page(model, drafts, loc),
	})
}

// Load runs the reads planned by req.
func (b Base) Load(r *http.Request, req view.Request, s session.Session) view.Model {
	return view.Loader{API: b.deps.Reader}.Load(httpx.RequestContext(r), req, s)
}

// WriteFragment renders an htmx fragment with out-of-band notices.
func (b Base) WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, body templ.Component, notices ...form.Notice) {
	if err := pagerender.WriteFragment(w, r, statusCode, body, notices...); err != nil {
		b.deps.Logger.Error("render fragment", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error, s session.Session) {
	weberror.WriteModuleError(w, r, err, s, b.deps.Policy)
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request, s session.Session) {
	weberror.WriteAppError(w, r, http.StatusNotFound, s, b.deps.Policy)
}

// Redirect stores notice for the next page, if any, and redirects.
func (b Base) Redirect(w http.ResponseWriter, r *http.Request, location string, notice *form.Notice) {
	if notice != nil {
		flash.Write(w, r, *notice, b.deps.Policy)
	}
	httpx.WriteRedirect(w, r, location)
}
