package lingoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Words lists the words of a team.
func (c *Client) Words(ctx context.Context, token string, teamID int64) ([]Word, bool) {
	return getJSON[[]Word](ctx, c, "words", fmt.Sprintf("/api/teams/%d/words", teamID), token)
}

// Meanings lists the meanings of a word.
func (c *Client) Meanings(ctx context.Context, token string, wordID int64) ([]Meaning, bool) {
	return getJSON[[]Meaning](ctx, c, "meanings", fmt.Sprintf("/api/words/%d/meanings", wordID), token)
}

// Reflections lists the reflections of a word.
func (c *Client) Reflections(ctx context.Context, token string, wordID int64) ([]Reflection, bool) {
	return getJSON[[]Reflection](ctx, c, "reflections", fmt.Sprintf("/api/words/%d/reflections", wordID), token)
}

// MyTeams lists the teams the token's user belongs to.
func (c *Client) MyTeams(ctx context.Context, token string) ([]Team, bool) {
	return getJSON[[]Team](ctx, c, "my_teams", "/api/my/teams", token)
}

// UserInfo loads the token's user profile, including the current team.
func (c *Client) UserInfo(ctx context.Context, token string) (UserInfo, bool) {
	return getJSON[UserInfo](ctx, c, "userinfo", "/api/my/userinfo", token)
}

// Team loads one team.
func (c *Client) Team(ctx context.Context, token string, teamID int64) (Team, bool) {
	return getJSON[Team](ctx, c, "team", fmt.Sprintf("/api/teams/%d", teamID), token)
}

func getJSON[T any](ctx context.Context, c *Client, op, path, token string) (T, bool) {
	var zero T
	resp, span, err := c.send(ctx, op, http.MethodGet, path, token, nil)
	if err != nil {
		endSpan(span, err)
		c.logger.Warn("lingo api read failed", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return zero, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%s returned %s", op, resp.Status)
		endSpan(span, err)
		c.logger.Debug("lingo api read unavailable", zap.String("op", op), zap.String("path", path), zap.Int("status", resp.StatusCode))
		return zero, false
	}

	var payload T
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		err = fmt.Errorf("decode %s response: %w", op, err)
		endSpan(span, err)
		c.logger.Debug("lingo api read undecodable", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return zero, false
	}
	endSpan(span, nil)
	return payload, true
}
