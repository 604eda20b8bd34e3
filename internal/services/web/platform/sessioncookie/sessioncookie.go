// Package sessioncookie reads and writes the browser session id and the
// API access token cookies.
package sessioncookie

import (
	"net/http"
	"strings"

	"github.com/louisbranch/lingo/internal/services/web/platform/requestmeta"
)

const (
	// SessionName carries the opaque browser session id.
	SessionName = "lingo_session"
	// TokenName carries the access token issued by the identity provider.
	TokenName = "lingo_token"
)

// Jar applies one scheme policy to every cookie it writes. Cookies are
// session-scoped: no Max-Age is set on writes.
type Jar struct {
	Policy requestmeta.SchemePolicy
}

// SessionID returns the browser session id when present.
func (j Jar) SessionID(r *http.Request) (string, bool) {
	return read(r, SessionName)
}

// WriteSessionID stores the browser session id.
func (j Jar) WriteSessionID(w http.ResponseWriter, r *http.Request, id string) {
	j.set(w, r, SessionName, id, 0)
}

// ClearSessionID expires the browser session id.
func (j Jar) ClearSessionID(w http.ResponseWriter, r *http.Request) {
	j.set(w, r, SessionName, "", -1)
}

// Token returns the access token for r. A bearer Authorization header wins
// over the token cookie.
func (j Jar) Token(r *http.Request) string {
	if token := requestmeta.BearerToken(r); token != "" {
		return token
	}
	token, _ := read(r, TokenName)
	return token
}

// WriteToken stores the access token.
func (j Jar) WriteToken(w http.ResponseWriter, r *http.Request, token string) {
	j.set(w, r, TokenName, token, 0)
}

// ClearToken expires the access token cookie.
func (j Jar) ClearToken(w http.ResponseWriter, r *http.Request) {
	j.set(w, r, TokenName, "", -1)
}

func (j Jar) set(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    strings.TrimSpace(value),
		Path:     "/",
		HttpOnly: true,
		Secure:   j.Policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func read(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}
