package auth

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/louisbranch/lingo/internal/services/web/platform/requestmeta"
)

// maxLoginBody bounds the login request body.
const maxLoginBody = 16 << 10

// loginInput is what the identity widget posts.
type loginInput struct {
	DisplayName string `json:"display_name"`
	Token       string `json:"token"`
}

// loginResponse answers JSON sign-in callers.
type loginResponse struct {
	DisplayName     string `json:"display_name"`
	CurrentTeamID   *int64 `json:"current_team_id"`
	CurrentTeamName string `json:"current_team_name,omitempty"`
	IsTeamOwner     bool   `json:"is_team_owner"`
}

// wantsJSON reports whether r was sent as JSON.
func wantsJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// parseLogin reads the sign-in form or JSON body. A bearer token header
// stands in for a missing token field.
func parseLogin(w http.ResponseWriter, r *http.Request) (loginInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBody)
	var in loginInput
	if wantsJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return loginInput{}, fmt.Errorf("decode login body: %w", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return loginInput{}, fmt.Errorf("parse login form: %w", err)
		}
		in.DisplayName = r.PostForm.Get("display_name")
		in.Token = r.PostForm.Get("token")
	}
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Token = strings.TrimSpace(in.Token)
	if in.Token == "" {
		in.Token = requestmeta.BearerToken(r)
	}
	return in, nil
}
