package view

import (
	"context"

	"github.com/louisbranch/lingo/internal/services/lingoapi"
	"github.com/louisbranch/lingo/internal/services/web/session"
	"golang.org/x/sync/errgroup"
)

// Reader is the read side of the Lingo API used to fill pages.
type Reader interface {
	Words(ctx context.Context, token string, teamID int64) ([]lingoapi.Word, bool)
	Meanings(ctx context.Context, token string, wordID int64) ([]lingoapi.Meaning, bool)
	Reflections(ctx context.Context, token string, wordID int64) ([]lingoapi.Reflection, bool)
	MyTeams(ctx context.Context, token string) ([]lingoapi.Team, bool)
	UserInfo(ctx context.Context, token string) (lingoapi.UserInfo, bool)
	Team(ctx context.Context, token string, teamID int64) (lingoapi.Team, bool)
}

// Section is one independently loaded list on a page.
type Section[T any] struct {
	Requested bool
	Available bool
	Items     []T
}

// Unavailable reports whether the section was requested and failed.
func (s Section[T]) Unavailable() bool {
	return s.Requested && !s.Available
}

// Empty reports whether the section loaded with no items.
func (s Section[T]) Empty() bool {
	return s.Requested && s.Available && len(s.Items) == 0
}

// Model is everything a page needs to render.
type Model struct {
	Request     Request
	Session     session.Session
	Words       Section[lingoapi.Word]
	Meanings    Section[lingoapi.Meaning]
	Reflections Section[lingoapi.Reflection]
	Teams       Section[lingoapi.Team]
	Team        Section[lingoapi.Team]
	UserInfo    Section[lingoapi.UserInfo]
}

// SelectedWord returns the word matching the request selection, if loaded.
func (m Model) SelectedWord() (lingoapi.Word, bool) {
	if m.Request.SelectedWordID == NoWord {
		return lingoapi.Word{}, false
	}
	for _, word := range m.Words.Items {
		if word.ID == m.Request.SelectedWordID {
			return word, true
		}
	}
	return lingoapi.Word{}, false
}

// CurrentTeam returns the loaded detail of the current team.
func (m Model) CurrentTeam() (lingoapi.Team, bool) {
	if !m.Team.Available || len(m.Team.Items) == 0 {
		return lingoapi.Team{}, false
	}
	return m.Team.Items[0], true
}

// Loader executes the fetches planned by a Request.
type Loader struct {
	API Reader
}

// Load runs every requested fetch in parallel. Failed reads mark their
// section unavailable and never fail the page.
func (l Loader) Load(ctx context.Context, req Request, s session.Session) Model {
	model := Model{Request: req, Session: s}
	if l.API == nil || !s.LoggedIn() {
		markRequested(&model, req)
		return model
	}
	token := s.APIToken

	g, gctx := errgroup.WithContext(ctx)
	if req.FetchWords {
		g.Go(func() error {
			items, ok := l.API.Words(gctx, token, req.TeamID)
			model.Words = Section[lingoapi.Word]{Requested: true, Available: ok, Items: items}
			return nil
		})
	}
	if req.FetchMeanings {
		g.Go(func() error {
			items, ok := l.API.Meanings(gctx, token, req.SelectedWordID)
			model.Meanings = Section[lingoapi.Meaning]{Requested: true, Available: ok, Items: items}
			return nil
		})
	}
	if req.FetchReflections {
		g.Go(func() error {
			items, ok := l.API.Reflections(gctx, token, req.SelectedWordID)
			model.Reflections = Section[lingoapi.Reflection]{Requested: true, Available: ok, Items: items}
			return nil
		})
	}
	if req.FetchTeams {
		g.Go(func() error {
			items, ok := l.API.MyTeams(gctx, token)
			model.Teams = Section[lingoapi.Team]{Requested: true, Available: ok, Items: items}
			return nil
		})
	}
	if req.FetchTeam {
		g.Go(func() error {
			team, ok := l.API.Team(gctx, token, req.TeamID)
			model.Team = Section[lingoapi.Team]{Requested: true, Available: ok}
			if ok {
				model.Team.Items = []lingoapi.Team{team}
			}
			return nil
		})
	}
	if req.FetchUserInfo {
		g.Go(func() error {
			info, ok := l.API.UserInfo(gctx, token)
			model.UserInfo = Section[lingoapi.UserInfo]{Requested: true, Available: ok}
			if ok {
				model.UserInfo.Items = []lingoapi.UserInfo{info}
			}
			return nil
		})
	}
	_ = g.Wait()
	return model
}

func markRequested(model *Model, req Request) {
	model.Words.Requested = req.FetchWords
	model.Meanings.Requested = req.FetchMeanings
	model.Reflections.Requested = req.FetchReflections
	model.Teams.Requested = req.FetchTeams
	model.Team.Requested = req.FetchTeam
	model.UserInfo.Requested = req.FetchUserInfo
}
