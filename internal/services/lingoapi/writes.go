package lingoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type createWordBody struct {
	TeamID int64  `json:"team_id"`
	Word   string `json:"word"`
}

type createMeaningBody struct {
	Meaning string `json:"meaning"`
}

type createReflectionBody struct {
	Reflection string `json:"reflection"`
}

type setCurrentTeamBody struct {
	CurrentTeamID int64 `json:"current_team_id"`
}

// CreateWord adds a word to a team.
func (c *Client) CreateWord(ctx context.Context, token string, teamID int64, word string) WriteResult {
	return c.postJSON(ctx, "create_word", "/api/words", token, createWordBody{TeamID: teamID, Word: word})
}

// CreateMeaning attaches a meaning to a word.
func (c *Client) CreateMeaning(ctx context.Context, token string, wordID int64, meaning string) WriteResult {
	return c.postJSON(ctx, "create_meaning", fmt.Sprintf("/api/words/%d/meanings", wordID), token, createMeaningBody{Meaning: meaning})
}

// CreateReflection attaches a reflection to a word.
func (c *Client) CreateReflection(ctx context.Context, token string, wordID int64, reflection string) WriteResult {
	return c.postJSON(ctx, "create_reflection", fmt.Sprintf("/api/words/%d/reflections", wordID), token, createReflectionBody{Reflection: reflection})
}

// SetCurrentTeam switches the user's current team.
func (c *Client) SetCurrentTeam(ctx context.Context, token string, teamID int64) WriteResult {
	return c.postJSON(ctx, "set_current_team", "/api/my/teams", token, setCurrentTeamBody{CurrentTeamID: teamID})
}

func (c *Client) postJSON(ctx context.Context, op, path, token string, payload any) WriteResult {
	resp, span, err := c.send(ctx, op, http.MethodPost, path, token, payload)
	if err != nil {
		endSpan(span, err)
		c.logger.Warn("lingo api write failed", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return WriteResult{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxMessageBytes))
	result := WriteResult{Status: resp.StatusCode}
	if result.Succeeded() {
		endSpan(span, nil)
		return result
	}
	result.Message = messageFromBody(raw)
	if result.Message == "" {
		result.Message = strings.TrimSpace(resp.Status)
	}
	if readErr != nil {
		c.logger.Debug("lingo api write body truncated", zap.String("op", op), zap.Error(readErr))
	}
	endSpan(span, fmt.Errorf("%s returned %d", op, resp.StatusCode))
	c.logger.Info("lingo api write rejected", zap.String("op", op), zap.Int("status", resp.StatusCode), zap.String("message", result.Message))
	return result
}

// messageFromBody prefers an "error" or "detail" string from JSON bodies and
// falls back to the raw text.
func messageFromBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return ""
	}
	var envelope struct {
		Error  any `json:"error"`
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return text
	}
	for _, candidate := range []any{envelope.Error, envelope.Detail} {
		if value, ok := candidate.(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return text
}
