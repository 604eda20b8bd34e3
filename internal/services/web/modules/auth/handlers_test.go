package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/lingo/internal/services/web/platform/flash"
	"github.com/louisbranch/lingo/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
	"github.com/louisbranch/lingo/internal/services/web/webtest"
)

func serve(t *testing.T, env *webtest.Env, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := New(env.Deps).Mount()
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	return rr
}

func signedToken(t *testing.T, name string, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"name": name,
		"exp":  exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLoginFormStoresTokenAndIdentity(t *testing.T) {
	t.Parallel()

	env := webtest.New(t)
	userID := env.API.AddUser("tok", "Ada")
	teamID := env.API.AddTeam("Linguists", userID)
	env.API.SetCurrentTeam(userID, teamID)

	rr := serve(t, env, webtest.Request(http.MethodPost, routepath.AuthSession, url.Values{
		"display_name": {"Ada"},
		"token":        {"tok"},
	}))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != routepath.Root {
		t.Fatalf("Location = %q, want %q", got, routepath.Root)
	}
	token, ok := webtest.Cookie(rr, sessioncookie.TokenName)
	if !ok || token.Value != "tok" {
		t.Fatalf("token cookie = %+v, want tok", token)
	}
	sessionCookie, ok := webtest.Cookie(rr, sessioncookie.SessionName)
	if !ok {
		t.Fatal("expected session cookie")
	}
	stored, found, err := env.Store.LoadSession(context.Background(), sessionCookie.Value)
	if err != nil || !found {
		t.Fatalf("load session: found=%v err=%v", found, err)
	}
	if stored.DisplayName != "Ada" || stored.CurrentTeamID != teamID || stored.CurrentTeamName != "Linguists" {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestLoginWithoutTokenClearsCookieAndWarns(t *testing.T) {
	t.Parallel()

	env := webtest.New(t)
	rr := serve(t, env, webtest.Request(http.MethodPost, routepath.AuthSession, url.Values{"display_name": {"Ada"}}))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	token, ok := webtest.Cookie(rr, sessioncookie.TokenName)
	if !ok || token.MaxAge >= 0 {
		t.Fatalf("token cookie = %+v, want expired", token)
	}
	if _, ok := webtest.Cookie(rr, flash.CookieName); !ok {
		t.Fatal("expected flash notice cookie")
	}
}

func TestLoginJSON(t *testing.T) {
	t.Parallel()

	env := webtest.New(t)
	userID := env.API.AddUser("tok", "Ada")
	teamID := env.API.AddTeam("Linguists", userID)
	env.API.SetCurrentTeam(userID, teamID)

	req := httptest.NewRequest(http.MethodPost, webtest.Origin+routepath.AuthSession, strings.NewReader(`{"display_name":"Ada","token":"tok"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := serve(t, env, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var got loginResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := loginResponse{DisplayName: "Ada", CurrentTeamID: &teamID, CurrentTeamName: "Linguists", IsTeamOwner: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginJSONRejectsMissingToken(t *testing.T) {
	t.Parallel()

	env := webtest.New(t)
	req := httptest.NewRequest(http.MethodPost, webtest.Origin+routepath.AuthSession, strings.NewReader(`{"display_name":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := serve(t, env, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), "Please provide a display name") {
		t.Fatalf("body = %q, want localized notice", rr.Body.String())
	}
}

func TestLoginRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	env := webtest.New(t)
	token := signedToken(t, "Ada", time.Now().Add(-time.Hour))
	env.API.AddUser(token, "Ada")
	rr := serve(t, env, webtest.Request(http.MethodPost, routepath.AuthSession, url.Values{"token": {token}}))
	if cookie, ok := webtest.Cookie(rr, sessioncookie.TokenName); !ok || cookie.Value != "" {
		t.Fatalf("token cookie = %+v, want cleared", cookie)
	}
}

func TestLogoutClearsIdentity(t *testing.T) {
	t.Parallel()

	env := webtest.New(t)
	env.API.AddUser("tok", "Ada")
	cookies := env.SignIn(t, "Ada", "tok")

	rr := serve(t, env, webtest.Request(http.MethodPost, routepath.AuthLogout, url.Values{}, cookies...))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if token, ok := webtest.Cookie(rr, sessioncookie.TokenName); !ok || token.MaxAge >= 0 {
		t.Fatalf("token cookie = %+v, want expired", token)
	}
	if env.Browsers.SignedIn(webtest.Request(http.MethodGet, "/", nil, webtest.Follow(rr, cookies)...)) {
		t.Fatal("SignedIn() = true after logout")
	}
}

func TestLivenessKeepsLiveSession(t *testing.T) {
	t.Parallel()

	env := webtest.New(t)
	token := signedToken(t, "Ada", time.Now().Add(time.Hour))
	env.API.AddUser(token, "Ada")
	cookies := env.SignIn(t, "Ada", token)

	rr := serve(t, env, webtest.HTMX(webtest.Request(http.MethodPost, routepath.AuthLiveness, url.Values{}, cookies...)))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestLivenessSignsOutExpiredSession(t *testing.T) {
	t.Parallel()

	env := webtest.New(t)
	token := signedToken(t, "Ada", time.Now().Add(time.Hour))
	env.API.AddUser(token, "Ada")
	cookies := env.SignIn(t, "Ada", token)
	env.Deps.Now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	rr := serve(t, env, webtest.HTMX(webtest.Request(http.MethodPost, routepath.AuthLiveness, url.Values{}, cookies...)))
	if got := rr.Header().Get("HX-Redirect"); got != routepath.Root {
		t.Fatalf("HX-Redirect = %q, want %q", got, routepath.Root)
	}
	if token, ok := webtest.Cookie(rr, sessioncookie.TokenName); !ok || token.MaxAge >= 0 {
		t.Fatalf("token cookie = %+v, want expired", token)
	}
	if _, ok := webtest.Cookie(rr, flash.CookieName); !ok {
		t.Fatal("expected session expired notice")
	}
}
