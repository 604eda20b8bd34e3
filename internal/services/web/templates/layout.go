package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
	"github.com/louisbranch/lingo/internal/services/web/session"
	"github.com/louisbranch/lingo/internal/services/web/view"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// MainID is the element htmx page navigation swaps into.
const MainID = "main"

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang    string
	Loc     Localizer
	Title   string
	Route   view.Route
	Session session.Session
	Notices []NoticeView
}

// PageTitle returns the document title for a page heading.
func PageTitle(loc Localizer, heading string) string {
	if heading == "" {
		return T(loc, "app.name")
	}
	return T(loc, "app.title", heading)
}

// Layout renders the full document around the children in ctx.
func Layout(page PageContext) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		lang := page.Lang
		if lang == "" {
			lang = "en"
		}
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		h.text(PageTitle(page.Loc, page.Title))
		h.raw("</title>")
		h.raw("<link rel=\"stylesheet\"")
		h.attr("href", routepath.StaticPrefix+"lingo.css")
		h.raw("><script")
		h.attr("src", htmxScript)
		h.raw(" defer></script><script")
		h.attr("src", routepath.StaticPrefix+"lingo.js")
		h.raw(" defer></script></head><body")
		h.attr("data-route", page.Route.String())
		h.raw(">")

		h.render(ctx, Header(page.Session, page.Loc))
		h.raw("<div class=\"shell\">")
		h.render(ctx, Nav(page.Route, page.Session.LoggedIn(), page.Loc))
		h.raw("<main")
		h.attr("id", MainID)
		h.raw(">")
		h.render(ctx, templ.GetChildren(ctx))
		h.raw("</main></div>")
		h.render(ctx, Notices(page.Notices, page.Loc))
		if page.Session.LoggedIn() {
			h.raw("<div id=\"liveness\"")
			h.attr("hx-post", routepath.AuthLiveness)
			h.attr("hx-trigger", "every 30s")
			h.attr("hx-swap", "none")
			h.raw("></div>")
		}
		h.raw("</body></html>")
	})
}

// Header renders the top bar with the identity widget and current team.
func Header(s session.Session, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<header id=\"header\" class=\"topbar\"><a class=\"brand\"")
		h.attr("href", routepath.Root)
		h.raw(">")
		h.text(T(loc, "app.name"))
		h.raw("</a>")

		h.raw("<span id=\"current-team\" class=\"current-team\"")
		h.flag("hidden", !s.HasTeam())
		h.raw(">")
		if s.HasTeam() {
			h.text(T(loc, "header.current_team", s.CurrentTeamName))
		}
		h.raw("</span>")

		h.raw("<form id=\"login-form\" class=\"identity\" method=\"post\"")
		h.attr("action", routepath.AuthSession)
		h.flag("hidden", s.LoggedIn())
		h.raw("><input type=\"text\" name=\"display_name\" autocomplete=\"name\"")
		h.attr("placeholder", T(loc, "header.display_name"))
		h.attr("aria-label", T(loc, "header.display_name"))
		h.raw("><input type=\"password\" name=\"token\" required autocomplete=\"off\"")
		h.attr("placeholder", T(loc, "header.token"))
		h.attr("aria-label", T(loc, "header.token"))
		h.raw("><button type=\"submit\" class=\"btn btn-primary\">")
		h.text(T(loc, "header.sign_in"))
		h.raw("</button></form>")

		h.raw("<form id=\"logout-form\" class=\"identity\" method=\"post\"")
		h.attr("action", routepath.AuthLogout)
		h.flag("hidden", !s.LoggedIn())
		h.raw("><span class=\"display-name\">")
		h.text(s.DisplayName)
		h.raw("</span><button type=\"submit\" class=\"btn\">")
		h.text(T(loc, "header.sign_out"))
		h.raw("</button></form></header>")
	})
}

type navItem struct {
	route view.Route
	key   string
}

var navItems = []navItem{
	{route: view.RouteDashboard, key: "nav.dashboard"},
	{route: view.RouteGlossary, key: "nav.glossary"},
	{route: view.RouteReflections, key: "nav.reflections"},
	{route: view.RouteTeams, key: "nav.teams"},
}

// Nav renders the left navigation. It has no entries while signed out.
func Nav(active view.Route, loggedIn bool, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<nav id=\"nav\" class=\"sidenav\"><ul>")
		if loggedIn {
			for _, item := range navItems {
				h.raw("<li><a")
				h.attr("href", item.route.Path())
				if item.route == active {
					h.attr("class", "active")
					h.attr("aria-current", "page")
				}
				h.raw(">")
				h.text(T(loc, item.key))
				h.raw("</a></li>")
			}
		}
		h.raw("</ul></nav>")
	})
}
