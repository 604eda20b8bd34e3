package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/lingo/internal/services/web/form"
	"github.com/louisbranch/lingo/internal/services/web/signal"
	"github.com/louisbranch/lingo/internal/services/web/view"
)

// Drafts carries form input to re-render after a failed full-page submit.
type Drafts map[signal.Kind]form.Fields

func (d Drafts) fields(kind signal.Kind, wordID int64) form.Fields {
	fields, ok := d[kind]
	if !ok {
		fields = form.Fields{}
	}
	if kind != signal.Words && fields.WordID == form.NoWord {
		fields.WordID = wordID
	}
	return fields
}

// Page renders the body of the page planned by model.Request.
func Page(model view.Model, drafts Drafts, loc Localizer) templ.Component {
	req := model.Request
	if !req.Found() {
		return ErrorState(http.StatusNotFound, loc)
	}
	if req.RequiresLogin {
		return signInRequired(req.Route, loc)
	}
	switch req.Route {
	case view.RouteDashboard:
		return dashboardPage(model, loc)
	case view.RouteGlossary:
		return glossaryPage(model, drafts, loc)
	case view.RouteReflections:
		return reflectionsPage(model, drafts, loc)
	case view.RouteTeams:
		return teamsPage(model, loc)
	default:
		return ErrorState(http.StatusNotFound, loc)
	}
}

func openPage(h *htmlWriter, route view.Route, loc Localizer) {
	h.raw("<section")
	h.attr("id", route.String()+"-page")
	h.attr("class", "page")
	h.raw(">")
	h.element("h1", "", T(loc, route.TitleKey()))
}

func signInRequired(route view.Route, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		openPage(h, route, loc)
		h.raw("<div id=\"sign-in-required\" class=\"card\">")
		placeholder(h, "", T(loc, "page.sign_in_required"))
		h.raw("</div></section>")
	})
}

func dashboardPage(model view.Model, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		s := model.Session
		openPage(h, view.RouteDashboard, loc)
		if !s.LoggedIn() {
			h.raw("<div id=\"welcome\" class=\"card\">")
			placeholder(h, "", T(loc, "dashboard.welcome"))
			h.raw("</div></section>")
			return
		}
		h.raw("<div class=\"card-grid\">")

		h.raw("<article id=\"profile-card\" class=\"card\">")
		h.element("h2", "", T(loc, "dashboard.profile.title"))
		h.element("p", "", T(loc, "dashboard.profile.name", s.DisplayName))
		if model.UserInfo.Unavailable() {
			placeholder(h, "load-error", T(loc, "dashboard.profile.unavailable"))
		} else if len(model.UserInfo.Items) > 0 && model.UserInfo.Items[0].Email != "" {
			h.element("p", "", T(loc, "dashboard.profile.email", model.UserInfo.Items[0].Email))
		}
		if s.HasTeam() {
			h.element("p", "current-team-line", T(loc, "header.current_team", s.CurrentTeamName))
		}
		h.raw("</article>")

		h.raw("<article id=\"words-card\" class=\"card\">")
		h.element("h2", "", T(loc, "dashboard.words.title"))
		h.render(ctx, WordsList(model.Words, !s.HasTeam(), loc))
		h.raw("</article>")

		h.raw("<article id=\"reflections-card\" class=\"card\">")
		h.element("h2", "", T(loc, "dashboard.reflections.title"))
		if s.HasTeam() && model.Words.Available {
			h.render(ctx, WordPicker(model.Words.Items, view.NoWord, loc))
		} else {
			placeholder(h, "muted", T(loc, "words.needs_team"))
		}
		h.raw("</article>")

		h.raw("</div></section>")
	})
}

func glossaryPage(model view.Model, drafts Drafts, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		openPage(h, view.RouteGlossary, loc)
		h.raw("<div class=\"card\">")
		h.render(ctx, EntryForm(signal.Words, drafts.fields(signal.Words, view.NoWord), model.Request.NeedsTeam, loc))
		h.render(ctx, WordsList(model.Words, model.Request.NeedsTeam, loc))
		h.raw("</div></section>")
	})
}

func reflectionsPage(model view.Model, drafts Drafts, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		req := model.Request
		wordID := req.SelectedWordID
		openPage(h, view.RouteReflections, loc)
		if req.NeedsTeam {
			h.raw("<div class=\"card\">")
			placeholder(h, "muted", T(loc, "words.needs_team"))
			h.raw("</div></section>")
			return
		}
		h.raw("<div class=\"card\">")
		if model.Words.Unavailable() {
			placeholder(h, "load-error", T(loc, "words.unavailable"))
		} else {
			h.render(ctx, WordPicker(model.Words.Items, wordID, loc))
		}
		h.raw("</div><div class=\"card-grid two\">")

		h.raw("<article class=\"card\">")
		h.element("h2", "", T(loc, "meanings.title"))
		h.render(ctx, MeaningsTable(model.Meanings, wordID, loc))
		h.render(ctx, EntryForm(signal.Meanings, drafts.fields(signal.Meanings, wordID), wordID == view.NoWord, loc))
		h.raw("</article>")

		h.raw("<article class=\"card\">")
		h.element("h2", "", T(loc, "reflections.title"))
		h.render(ctx, ReflectionsTable(model.Reflections, wordID, loc))
		h.render(ctx, EntryForm(signal.Reflections, drafts.fields(signal.Reflections, wordID), wordID == view.NoWord, loc))
		h.raw("</article>")

		h.raw("</div></section>")
	})
}

func teamsPage(model view.Model, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		s := model.Session
		openPage(h, view.RouteTeams, loc)
		switch {
		case model.Teams.Unavailable():
			placeholder(h, "load-error", T(loc, "teams.unavailable"))
		case len(model.Teams.Items) == 0:
			placeholder(h, "muted", T(loc, "teams.empty"))
		default:
			h.raw("<div class=\"card-grid three\">")
			for _, team := range model.Teams.Items {
				current := s.HasTeam() && team.ID == s.CurrentTeamID
				h.raw("<article class=\"card team-card\"")
				h.attr("data-team-id", itoa(team.ID))
				h.raw(">")
				h.element("h2", "", team.Name)
				if team.IsOwner {
					h.element("span", "badge", T(loc, "teams.owner"))
				}
				h.render(ctx, TeamSelectForm(team.ID, current, loc))
				h.raw("</article>")
			}
			h.raw("</div>")
		}
		if model.Request.ShowTeamMembers {
			h.render(ctx, TeamMembers(model.Team, s.HasTeam(), loc))
		}
		h.raw("</section>")
	})
}
