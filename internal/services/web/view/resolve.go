package view

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/lingo/internal/services/web/session"
)

// NoWord marks a page without a selected word.
const NoWord int64 = 0

// WordParam is the query parameter that selects a word.
const WordParam = "word"

// ProblemInvalidWord is the message key shown when the word parameter is
// not a usable id.
const ProblemInvalidWord = "notice.invalid_word_param"

// Request is the resolved plan for rendering one page.
type Request struct {
	Route          Route
	SelectedWordID int64
	// QueryProblem holds a message key when the query could not be used as
	// given. The page still renders with safe defaults.
	QueryProblem string
	// RequiresLogin is set when a signed-out session asks for a page that
	// needs an identity.
	RequiresLogin bool
	// NeedsTeam is set when the page lists team data but no team is selected.
	NeedsTeam       bool
	ShowTeamMembers bool
	TeamID          int64

	FetchWords       bool
	FetchMeanings    bool
	FetchReflections bool
	FetchTeams       bool
	FetchTeam        bool
	FetchUserInfo    bool
}

// Found reports whether the route is a known page.
func (r Request) Found() bool {
	return r.Route != RouteUnknown
}

// Resolve turns a URL path and raw query into a page request for s. It
// never fails: unknown paths resolve to RouteUnknown and malformed query
// values fall back to NoWord with a QueryProblem.
func Resolve(path, rawQuery string, s session.Session) Request {
	req := Request{Route: ParseRoute(path), SelectedWordID: NoWord, TeamID: s.CurrentTeamID}
	if req.Route == RouteUnknown {
		return req
	}

	if req.Route == RouteReflections {
		wordID, ok := ParseWordParam(rawQuery)
		if !ok {
			req.QueryProblem = ProblemInvalidWord
		}
		req.SelectedWordID = wordID
	}

	if !s.LoggedIn() {
		req.RequiresLogin = req.Route != RouteDashboard
		return req
	}

	switch req.Route {
	case RouteDashboard:
		req.FetchUserInfo = true
		req.FetchWords = s.HasTeam()
		req.FetchTeam = s.HasTeam()
	case RouteGlossary:
		req.FetchWords = s.HasTeam()
		req.NeedsTeam = !s.HasTeam()
	case RouteReflections:
		req.FetchWords = s.HasTeam()
		req.NeedsTeam = !s.HasTeam()
		req.FetchMeanings = req.SelectedWordID != NoWord
		req.FetchReflections = req.SelectedWordID != NoWord
	case RouteTeams:
		req.FetchTeams = true
		req.ShowTeamMembers = s.IsTeamOwner
		req.FetchTeam = s.IsTeamOwner && s.HasTeam()
	}
	return req
}

// ParseWordParam reads the first word value from rawQuery. A missing
// parameter yields NoWord and ok. A non-numeric, negative or badly escaped
// value yields NoWord and !ok.
func ParseWordParam(rawQuery string) (int64, bool) {
	query := strings.TrimPrefix(strings.TrimSpace(rawQuery), "?")
	values, err := url.ParseQuery(query)
	if err != nil && hasMalformedWord(query) {
		return NoWord, false
	}
	raw, present := values[WordParam]
	if !present || len(raw) == 0 {
		return NoWord, true
	}
	first := strings.TrimSpace(raw[0])
	if first == "" {
		return NoWord, true
	}
	id, err := strconv.ParseInt(first, 10, 64)
	if err != nil || id < 0 {
		return NoWord, false
	}
	return id, true
}

// hasMalformedWord reports whether a word pair in query fails to unescape.
func hasMalformedWord(query string) bool {
	for _, pair := range strings.Split(query, "&") {
		key, value, _ := strings.Cut(pair, "=")
		key, keyErr := url.QueryUnescape(key)
		if keyErr != nil {
			continue
		}
		if key != WordParam {
			continue
		}
		if _, err := url.QueryUnescape(value); err != nil {
			return true
		}
	}
	return false
}
