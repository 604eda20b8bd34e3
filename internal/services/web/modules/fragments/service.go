package fragments

import (
	"github.com/louisbranch/lingo/internal/services/web/routepath"
	"github.com/louisbranch/lingo/internal/services/web/session"
	"github.com/louisbranch/lingo/internal/services/web/view"
)

// wordsPlan loads only the team's words.
func wordsPlan(s session.Session) view.Request {
	return view.Resolve(routepath.Glossary, "", s)
}

// meaningsPlan loads only the meanings of the word in rawQuery.
func meaningsPlan(rawQuery string, s session.Session) view.Request {
	req := view.Resolve(routepath.Reflections, rawQuery, s)
	req.FetchWords = false
	req.FetchReflections = false
	return req
}

// reflectionsPlan loads only the reflections of the word in rawQuery.
func reflectionsPlan(rawQuery string, s session.Session) view.Request {
	req := view.Resolve(routepath.Reflections, rawQuery, s)
	req.FetchWords = false
	req.FetchMeanings = false
	return req
}

// teamMembersPlan loads the current team when s owns it.
func teamMembersPlan(s session.Session) view.Request {
	req := view.Resolve(routepath.Teams, "", s)
	req.FetchTeams = false
	return req
}
