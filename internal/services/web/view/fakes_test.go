package view

import (
	"context"
	"sync"

	"github.com/louisbranch/lingo/internal/services/lingoapi"
)

// fakeReader implements Reader with canned responses and call tracking.
type fakeReader struct {
	mu          sync.Mutex
	words       []lingoapi.Word
	wordsOK     bool
	meanings    []lingoapi.Meaning
	meaningsOK  bool
	reflections []lingoapi.Reflection
	reflectOK   bool
	teams       []lingoapi.Team
	teamsOK     bool
	team        lingoapi.Team
	teamOK      bool
	userInfo    lingoapi.UserInfo
	userInfoOK  bool
	calls       []string
	tokens      []string
}

func (f *fakeReader) record(call, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.tokens = append(f.tokens, token)
}

func (f *fakeReader) Words(_ context.Context, token string, _ int64) ([]lingoapi.Word, bool) {
	f.record("words", token)
	return f.words, f.wordsOK
}

func (f *fakeReader) Meanings(_ context.Context, token string, _ int64) ([]lingoapi.Meaning, bool) {
	f.record("meanings", token)
	return f.meanings, f.meaningsOK
}

func (f *fakeReader) Reflections(_ context.Context, token string, _ int64) ([]lingoapi.Reflection, bool) {
	f.record("reflections", token)
	return f.reflections, f.reflectOK
}

func (f *fakeReader) MyTeams(_ context.Context, token string) ([]lingoapi.Team, bool) {
	f.record("my_teams", token)
	return f.teams, f.teamsOK
}

func (f *fakeReader) UserInfo(_ context.Context, token string) (lingoapi.UserInfo, bool) {
	f.record("userinfo", token)
	return f.userInfo, f.userInfoOK
}

func (f *fakeReader) Team(_ context.Context, token string, _ int64) (lingoapi.Team, bool) {
	f.record("team", token)
	return f.team, f.teamOK
}

func (f *fakeReader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
