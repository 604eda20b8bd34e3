package apitest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/lingo/internal/services/lingoapi"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// authenticate resolves the bearer token. Callers must hold s.mu.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (*user, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}
	id, ok := s.tokens[strings.TrimSpace(token)]
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Invalid token")
		return nil, false
	}
	return s.users[id], true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, name+" must be an integer")
		return 0, false
	}
	return id, true
}

func (t *team) hasMember(userID int64) bool {
	for _, id := range t.members {
		if id == userID {
			return true
		}
	}
	return false
}

func (s *Server) teamView(t *team, viewer *user) lingoapi.Team {
	view := lingoapi.Team{ID: t.id, Name: t.name, IsOwner: t.ownerID == viewer.id}
	for _, id := range t.members {
		if member, ok := s.users[id]; ok {
			view.Members = append(view.Members, lingoapi.TeamMember{ID: member.id, DisplayName: member.displayName})
		}
	}
	return view
}

// memberTeam resolves a team the user belongs to. Callers must hold s.mu.
func (s *Server) memberTeam(w http.ResponseWriter, u *user, teamID int64) (*team, bool) {
	t, ok := s.teams[teamID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Team not found")
		return nil, false
	}
	if !t.hasMember(u.id) {
		writeDetail(w, http.StatusForbidden, "Not a member of this team")
		return nil, false
	}
	return t, true
}

// visibleWord resolves a word in one of the user's teams. Callers must hold s.mu.
func (s *Server) visibleWord(w http.ResponseWriter, u *user, wordID int64) bool {
	for _, word := range s.words {
		if word.ID != wordID {
			continue
		}
		if t, ok := s.teams[word.TeamID]; ok && t.hasMember(u.id) {
			return true
		}
		writeDetail(w, http.StatusForbidden, "Not a member of this team")
		return false
	}
	writeDetail(w, http.StatusNotFound, "Word not found")
	return false
}

func (s *Server) wordsFor(teamID int64) []lingoapi.Word {
	words := []lingoapi.Word{}
	for _, word := range s.words {
		if word.TeamID == teamID {
			words = append(words, word)
		}
	}
	return words
}

func (s *Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, lingoapi.UserInfo{
		IsAdmin:       u.isAdmin,
		CurrentTeamID: u.currentTeamID,
		DisplayName:   u.displayName,
	})
}

func (s *Server) handleMyTeams(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	teams := []lingoapi.Team{}
	for id := int64(0); id <= s.nextID; id++ {
		t, ok := s.teams[id]
		if ok && t.hasMember(u.id) {
			teams = append(teams, s.teamView(t, u))
		}
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleSetCurrentTeam(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var body struct {
		CurrentTeamID *int64 `json:"current_team_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.CurrentTeamID == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "current_team_id is required")
		return
	}
	if _, ok := s.memberTeam(w, u, *body.CurrentTeamID); !ok {
		return
	}
	id := *body.CurrentTeamID
	u.currentTeamID = &id
	writeJSON(w, http.StatusOK, map[string]int64{"current_team_id": id})
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	t, ok := s.memberTeam(w, u, teamID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.teamView(t, u))
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if _, ok := s.memberTeam(w, u, teamID); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.wordsFor(teamID))
}

func (s *Server) handleCreateWord(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var body struct {
		TeamID int64  `json:"team_id"`
		Word   string `json:"word"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	if strings.TrimSpace(body.Word) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "word is required")
		return
	}
	if _, ok := s.memberTeam(w, u, body.TeamID); !ok {
		return
	}
	for _, existing := range s.wordsFor(body.TeamID) {
		if strings.EqualFold(existing.Word, body.Word) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "duplicate"})
			return
		}
	}
	word := lingoapi.Word{ID: s.allocID(), Word: body.Word, TeamID: body.TeamID}
	s.words = append(s.words, word)
	writeJSON(w, http.StatusCreated, word)
}

func (s *Server) handleMeanings(w http.ResponseWriter, r *http.Request) {
	wordID, ok := pathID(w, r, "word_id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if !s.visibleWord(w, u, wordID) {
		return
	}
	meanings := []lingoapi.Meaning{}
	for _, meaning := range s.meanings {
		if meaning.WordID == wordID {
			meanings = append(meanings, meaning)
		}
	}
	writeJSON(w, http.StatusOK, meanings)
}

func (s *Server) handleCreateMeaning(w http.ResponseWriter, r *http.Request) {
	wordID, ok := pathID(w, r, "word_id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var body struct {
		Meaning string `json:"meaning"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Meaning) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "meaning is required")
		return
	}
	if !s.visibleWord(w, u, wordID) {
		return
	}
	meaning := lingoapi.Meaning{ID: s.allocID(), WordID: wordID, Meaning: body.Meaning, CreatedAt: s.timestamp()}
	s.meanings = append(s.meanings, meaning)
	writeJSON(w, http.StatusCreated, meaning)
}

func (s *Server) handleReflections(w http.ResponseWriter, r *http.Request) {
	wordID, ok := pathID(w, r, "word_id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if !s.visibleWord(w, u, wordID) {
		return
	}
	reflections := []lingoapi.Reflection{}
	for _, reflection := range s.reflections {
		if reflection.WordID == wordID {
			reflections = append(reflections, reflection)
		}
	}
	writeJSON(w, http.StatusOK, reflections)
}

func (s *Server) handleCreateReflection(w http.ResponseWriter, r *http.Request) {
	wordID, ok := pathID(w, r, "word_id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var body struct {
		Reflection string `json:"reflection"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Reflection) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "reflection is required")
		return
	}
	if !s.visibleWord(w, u, wordID) {
		return
	}
	reflection := lingoapi.Reflection{ID: s.allocID(), WordID: wordID, Reflection: body.Reflection, CreatedAt: s.timestamp()}
	s.reflections = append(s.reflections, reflection)
	writeJSON(w, http.StatusCreated, reflection)
}
