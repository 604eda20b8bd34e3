// Package apitest runs an in-memory Lingo REST API for tests.
package apitest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/lingo/internal/services/lingoapi"
)

// Request records one call received by the fake API.
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          string
}

type failure struct {
	status int
	body   string
}

type gate struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

type user struct {
	id            int64
	displayName   string
	isAdmin       bool
	currentTeamID *int64
}

type team struct {
	id      int64
	name    string
	ownerID int64
	members []int64
}

// Server is a fake Lingo API backed by in-memory maps.
type Server struct {
	srv *httptest.Server

	mu          sync.Mutex
	nextID      int64
	tokens      map[string]int64
	users       map[int64]*user
	teams       map[int64]*team
	words       []lingoapi.Word
	meanings    []lingoapi.Meaning
	reflections []lingoapi.Reflection
	failures    map[string]failure
	gates       map[string]*gate
	requests    []Request
	now         func() time.Time
}

// New starts a fake API that shuts down when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		nextID:   100,
		tokens:   make(map[string]int64),
		users:    make(map[int64]*user),
		teams:    make(map[int64]*team),
		failures: make(map[string]failure),
		gates:    make(map[string]*gate),
		now:      func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) },
	}
	s.srv = httptest.NewServer(s.routes())
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the fake API root.
func (s *Server) URL() string {
	return s.srv.URL
}

// Client returns a lingoapi client pointed at the fake API.
func (s *Server) Client(opts ...lingoapi.Option) *lingoapi.Client {
	return lingoapi.New(s.srv.URL, opts...)
}

// AddUser registers a user reachable through token.
func (s *Server) AddUser(token, displayName string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	s.users[id] = &user{id: id, displayName: displayName}
	s.tokens[token] = id
	return id
}

// AddTeam creates a team owned by ownerID with the given extra members.
func (s *Server) AddTeam(name string, ownerID int64, memberIDs ...int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	members := append([]int64{ownerID}, memberIDs...)
	s.teams[id] = &team{id: id, name: name, ownerID: ownerID, members: members}
	return id
}

// SetCurrentTeam sets a user's current team directly.
func (s *Server) SetCurrentTeam(userID, teamID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		id := teamID
		u.currentTeamID = &id
	}
}

// AddWord seeds a word.
func (s *Server) AddWord(teamID int64, word string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	s.words = append(s.words, lingoapi.Word{ID: id, Word: word, TeamID: teamID})
	return id
}

// AddMeaning seeds a meaning.
func (s *Server) AddMeaning(wordID int64, text string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	s.meanings = append(s.meanings, lingoapi.Meaning{ID: id, WordID: wordID, Meaning: text, CreatedAt: s.timestamp()})
	return id
}

// AddReflection seeds a reflection.
func (s *Server) AddReflection(wordID int64, text string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	s.reflections = append(s.reflections, lingoapi.Reflection{ID: id, WordID: wordID, Reflection: text, CreatedAt: s.timestamp()})
	return id
}

// Fail makes every request matching method and path answer with status and
// body until Recover is called.
func (s *Server) Fail(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

// Recover removes a failure installed by Fail.
func (s *Server) Recover(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, method+" "+path)
}

// Block holds every request matching method and path until release is
// called. entered is closed once the first such request arrives.
func (s *Server) Block(method, path string) (entered <-chan struct{}, release func()) {
	g := &gate{entered: make(chan struct{}), release: make(chan struct{})}
	key := method + " " + path
	s.mu.Lock()
	s.gates[key] = g
	s.mu.Unlock()
	var once sync.Once
	return g.entered, func() {
		once.Do(func() {
			s.mu.Lock()
			if s.gates[key] == g {
				delete(s.gates, key)
			}
			s.mu.Unlock()
			close(g.release)
		})
	}
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	count := 0
	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			count++
		}
	}
	return count
}

// Words returns the stored words of a team.
func (s *Server) Words(teamID int64) []lingoapi.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wordsFor(teamID)
}

func (s *Server) allocID() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) timestamp() string {
	return s.now().Format("2006-01-02T15:04:05")
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/my/userinfo", s.handleUserInfo)
	mux.HandleFunc("GET /api/my/teams", s.handleMyTeams)
	mux.HandleFunc("POST /api/my/teams", s.handleSetCurrentTeam)
	mux.HandleFunc("GET /api/teams/{team_id}", s.handleTeam)
	mux.HandleFunc("GET /api/teams/{team_id}/words", s.handleWords)
	mux.HandleFunc("POST /api/words", s.handleCreateWord)
	mux.HandleFunc("GET /api/words/{word_id}/meanings", s.handleMeanings)
	mux.HandleFunc("POST /api/words/{word_id}/meanings", s.handleCreateMeaning)
	mux.HandleFunc("GET /api/words/{word_id}/reflections", s.handleReflections)
	mux.HandleFunc("POST /api/words/{word_id}/reflections", s.handleCreateReflection)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          string(body),
		})
		fail, failing := s.failures[r.Method+" "+r.URL.Path]
		held, blocked := s.gates[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if blocked {
			held.once.Do(func() { close(held.entered) })
			select {
			case <-held.release:
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			w.WriteHeader(fail.status)
			_, _ = io.WriteString(w, fail.body)
			return
		}
		mux.ServeHTTP(w, r)
	})
}
