package lingoapi

import (
	"strings"
	"time"
)

// Word is a glossary term owned by a team.
type Word struct {
	ID     int64  `json:"id"`
	Word   string `json:"word"`
	TeamID int64  `json:"team_id"`
}

// Meaning is a definition attached to a word.
type Meaning struct {
	ID        int64  `json:"id"`
	WordID    int64  `json:"word_id"`
	Meaning   string `json:"meaning"`
	CreatedAt string `json:"created_at"`
}

// Created parses CreatedAt.
func (m Meaning) Created() (time.Time, bool) {
	return parseTimestamp(m.CreatedAt)
}

// Reflection is a free-text note attached to a word.
type Reflection struct {
	ID         int64  `json:"id"`
	WordID     int64  `json:"word_id"`
	Reflection string `json:"reflection"`
	CreatedAt  string `json:"created_at"`
}

// Created parses CreatedAt.
func (r Reflection) Created() (time.Time, bool) {
	return parseTimestamp(r.CreatedAt)
}

// Team is a group of users sharing a glossary.
type Team struct {
	ID      int64        `json:"id"`
	Name    string       `json:"team_name"`
	IsOwner bool         `json:"is_owner,omitempty"`
	Members []TeamMember `json:"members,omitempty"`
}

// TeamMember is one member listed on a team detail response.
type TeamMember struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}

// UserInfo describes the signed-in user as seen by the API.
type UserInfo struct {
	IsAdmin       bool   `json:"is_admin"`
	CurrentTeamID *int64 `json:"current_team_id"`
	DisplayName   string `json:"display_name,omitempty"`
	Email         string `json:"email,omitempty"`
}

// TeamID returns the current team id when the API reported one.
func (u UserInfo) TeamID() (int64, bool) {
	if u.CurrentTeamID == nil {
		return 0, false
	}
	return *u.CurrentTeamID, true
}

// WriteResult is the raw outcome of a create or update call.
type WriteResult struct {
	// Status is the HTTP status code, or 0 when the request never completed.
	Status int
	// Message is the backend's error text, or the transport error.
	Message string
}

// Succeeded reports whether the write was accepted.
func (r WriteResult) Succeeded() bool {
	return r.Status == 200 || r.Status == 201
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}
