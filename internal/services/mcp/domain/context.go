package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/lingo/internal/services/lingoapi"
)

// API is the slice of the Lingo API exposed as tools.
type API interface {
	Words(ctx context.Context, token string, teamID int64) ([]lingoapi.Word, bool)
	Meanings(ctx context.Context, token string, wordID int64) ([]lingoapi.Meaning, bool)
	Reflections(ctx context.Context, token string, wordID int64) ([]lingoapi.Reflection, bool)
	MyTeams(ctx context.Context, token string) ([]lingoapi.Team, bool)
	Team(ctx context.Context, token string, teamID int64) (lingoapi.Team, bool)
	CreateWord(ctx context.Context, token string, teamID int64, word string) lingoapi.WriteResult
	CreateMeaning(ctx context.Context, token string, wordID int64, meaning string) lingoapi.WriteResult
	CreateReflection(ctx context.Context, token string, wordID int64, reflection string) lingoapi.WriteResult
	SetCurrentTeam(ctx context.Context, token string, teamID int64) lingoapi.WriteResult
}

// Backend pairs the API client with the token every tool call uses.
type Backend struct {
	API   API
	Token string
}

// NewBackend validates api and token.
func NewBackend(api API, token string) (Backend, error) {
	if api == nil {
		return Backend{}, errors.New("lingo api client is required")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Backend{}, errors.New("api token is required")
	}
	return Backend{API: api, Token: token}, nil
}

// writeError describes a rejected write with the backend's message.
func writeError(op string, written lingoapi.WriteResult) error {
	message := strings.TrimSpace(written.Message)
	if message == "" {
		message = "unknown error"
	}
	return &ToolError{Op: op, Status: written.Status, Message: message}
}

// ToolError is returned by handlers when the Lingo API rejects a call.
type ToolError struct {
	Op      string
	Status  int
	Message string
}

func (e *ToolError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s failed: %s (status %d)", e.Op, e.Message, e.Status)
}
