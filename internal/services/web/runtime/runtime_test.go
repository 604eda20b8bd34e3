package runtime_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/lingo/internal/services/lingoapi"
	"github.com/louisbranch/lingo/internal/services/lingoapi/apitest"
	"github.com/louisbranch/lingo/internal/services/web/form"
	"github.com/louisbranch/lingo/internal/services/web/runtime"
	"github.com/louisbranch/lingo/internal/services/web/session"
	"github.com/louisbranch/lingo/internal/services/web/signal"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newRuntime(api *apitest.Server, initial session.Session) *runtime.Runtime {
	return runtime.New(api.Client(), session.New(initial), signal.New(), runtime.Options{
		Now: func() time.Time { return fixedNow },
	})
}

func TestLoginResolvesCurrentTeam(t *testing.T) {
	t.Parallel()

	api := apitest.New(t)
	userID := api.AddUser("tok", "Ada")
	teamID := api.AddTeam("Linguists", userID)
	api.SetCurrentTeam(userID, teamID)
	rt := newRuntime(api, session.Empty())

	result := rt.Dispatch(context.Background(), runtime.Login{DisplayName: "Ada", Token: "tok"})

	if !result.Changed || result.Notice != nil {
		t.Fatalf("result = %+v, want changed without notice", result)
	}
	want := session.Session{
		DisplayName:     "Ada",
		APIToken:        "tok",
		CurrentTeamID:   teamID,
		CurrentTeamName: "Linguists",
		IsTeamOwner:     true,
	}
	if diff := cmp.Diff(want, rt.Session().Snapshot()); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginWithoutCurrentTeamLeavesNoTeam(t *testing.T) {
	t.Parallel()

	api := apitest.New(t)
	api.AddUser("tok", "Ada")
	rt := newRuntime(api, session.Empty())

	rt.Dispatch(context.Background(), runtime.Login{DisplayName: "Ada", Token: "tok"})

	s := rt.Session().Snapshot()
	if !s.LoggedIn() || s.HasTeam() {
		t.Fatalf("session = %+v, want signed in without team", s)
	}
	if got := api.Count(http.MethodGet, "/api/my/userinfo"); got != 1 {
		t.Fatalf("userinfo calls = %d, want 1", got)
	}
}

func TestLoginClearsTeamWhenUserInfoUnavailable(t *testing.T) {
	t.Parallel()

	api := apitest.New(t)
	userID := api.AddUser("tok", "Ada")
	teamID := api.AddTeam("Linguists", userID)
	api.SetCurrentTeam(userID, teamID)
	api.Fail(http.MethodGet, "/api/my/userinfo", http.StatusBadGateway, "down")
	rt := newRuntime(api, session.Session{
		DisplayName:     "Old",
		APIToken:        "old",
		CurrentTeamID:   3,
		CurrentTeamName: "Stale",
	})

	rt.Dispatch(context.Background(), runtime.Login{DisplayName: "Ada", Token: "tok"})

	s := rt.Session().Snapshot()
	if s.DisplayName != "Ada" || s.HasTeam() {
		t.Fatalf("session = %+v, want Ada without team", s)
	}
}

func TestLoginUsesTokenNameWhenDisplayNameBlank(t *testing.T) {
	t.Parallel()

	api := apitest.New(t)
	token := signedToken(t, jwt.MapClaims{"name": "Grace", "exp": fixedNow.Add(time.Hour).Unix()})
	api.AddUser(token, "Grace")
	rt := newRuntime(api, session.Empty())

	rt.Dispatch(context.Background(), runtime.Login{Token: token})

	if got := rt.Session().Snapshot().DisplayName; got != "Grace" {
		t.Fatalf("DisplayName = %q, want Grace", got)
	}
}

func TestLoginRefusesExpiredToken(t *testing.T) {
	t.Parallel()

	api := apitest.New(t)
	token := signedToken(t, jwt.MapClaims{"name": "Grace", "exp": fixedNow.Add(-time.Minute).Unix()})
	rt := newRuntime(api, session.Empty())

	result := rt.Dispatch(context.Background(), runtime.Login{DisplayName: "Grace", Token: token})

	if result.Changed || result.Notice == nil || result.Notice.Key != runtime.KeyLoginExpired {
		t.Fatalf("result = %+v, want expired notice without change", result)
	}
	if len(api.Requests()) != 0 {
		t.Fatalf("requests = %d, want 0", len(api.Requests()))
	}
}

func TestLoginMissingTokenWarns(t *testing.T) {
	t.Parallel()

	rt := newRuntime(apitest.New(t), session.Empty())
	result := rt.Dispatch(context.Background(), runtime.Login{DisplayName: "Ada"})
	if result.Notice == nil || result.Notice.Key != runtime.KeyLoginMissing || result.Changed {
		t.Fatalf("result = %+v, want missing login warning", result)
	}
}

func TestLogoutClearsIdentityAndTeam(t *testing.T) {
	t.Parallel()

	rt := newRuntime(apitest.New(t), session.Session{
		DisplayName:     "Ada",
		APIToken:        "tok",
		CurrentTeamID:   7,
		CurrentTeamName: "Linguists",
		IsTeamOwner:     true,
	})

	result := rt.Dispatch(context.Background(), runtime.Logout{})

	if !result.Changed {
		t.Fatal("Changed = false, want true")
	}
	if diff := cmp.Diff(session.Empty(), rt.Session().Snapshot()); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectTeamUpdatesSession(t *testing.T) {
	t.Parallel()

	api := apitest.New(t)
	ownerID := api.AddUser("owner", "Olga")
	userID := api.AddUser("tok", "Ada")
	teamID := api.AddTeam("Team Seven", ownerID, userID)
	rt := newRuntime(api, session.Session{DisplayName: "Ada", APIToken: "tok", CurrentTeamID: session.NoTeam})

	result := rt.Dispatch(context.Background(), runtime.SelectTeam{TeamID: teamID})

	if !result.Changed || result.Notice == nil || result.Notice.Level != form.LevelSuccess {
		t.Fatalf("result = %+v, want changed with success notice", result)
	}
	s := rt.Session().Snapshot()
	if s.CurrentTeamID != teamID || s.CurrentTeamName != "Team Seven" || s.IsTeamOwner {
		t.Fatalf("session = %+v", s)
	}
	if got := api.Count(http.MethodPost, "/api/my/teams"); got != 1 {
		t.Fatalf("POST /api/my/teams count = %d, want 1", got)
	}
	teamPath := "/api/teams/" + strconv.FormatInt(teamID, 10)
	if got := api.Count(http.MethodGet, teamPath); got != 1 {
		t.Fatalf("GET %s count = %d, want 1", teamPath, got)
	}
}

// teamDetailWithoutID answers the team endpoints with a detail body that
// carries only the team name.
func teamDetailWithoutID(t *testing.T) *lingoapi.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/my/userinfo", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"is_admin":false,"current_team_id":7}`))
	})
	mux.HandleFunc("POST /api/my/teams", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("GET /api/teams/7", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"team_name":"Linguists"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return lingoapi.New(srv.URL)
}

func TestTeamIDComesFromRequestNotDetail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial session.Session
		event   runtime.Event
	}{
		{
			name:    "select team",
			initial: session.Session{DisplayName: "Ada", APIToken: "tok", CurrentTeamID: session.NoTeam},
			event:   runtime.SelectTeam{TeamID: 7},
		},
		{
			name:    "login",
			initial: session.Empty(),
			event:   runtime.Login{DisplayName: "Ada", Token: "tok"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rt := runtime.New(teamDetailWithoutID(t), session.New(tc.initial), signal.New(), runtime.Options{
				Now: func() time.Time { return fixedNow },
			})

			rt.Dispatch(context.Background(), tc.event)

			s := rt.Session().Snapshot()
			if s.CurrentTeamID != 7 || s.CurrentTeamName != "Linguists" {
				t.Fatalf("team = %d %q, want 7 Linguists", s.CurrentTeamID, s.CurrentTeamName)
			}
		})
	}
}

func TestSelectTeamWriteFailureKeepsSession(t *testing.T) {
	t.Parallel()

	api := apitest.New(t)
	userID := api.AddUser("tok", "Ada")
	teamID := api.AddTeam("Linguists", userID)
	api.Fail(http.MethodPost, "/api/my/teams", http.StatusInternalServerError, `{"detail":"boom"}`)
	initial := session.Session{DisplayName: "Ada", APIToken: "tok", CurrentTeamID: session.NoTeam}
	rt := newRuntime(api, initial)

	result := rt.Dispatch(context.Background(), runtime.SelectTeam{TeamID: teamID})

	if result.Changed || result.Notice == nil || result.Notice.Level != form.LevelDanger {
		t.Fatalf("result = %+v, want unchanged with danger notice", result)
	}
	if result.Notice.Key != runtime.KeyTeamSelectFail {
		t.Fatalf("notice key = %q, want %q", result.Notice.Key, runtime.KeyTeamSelectFail)
	}
	if diff := cmp.Diff(initial, rt.Session().Snapshot()); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectTeamDetailUnavailableKeepsSession(t *testing.T) {
	t.Parallel()

	api := apitest.New(t)
	userID := api.AddUser("tok", "Ada")
	teamID := api.AddTeam("Linguists", userID)
	api.Fail(http.MethodGet, "/api/teams/"+strconv.FormatInt(teamID, 10), http.StatusServiceUnavailable, "")
	rt := newRuntime(api, session.Session{DisplayName: "Ada", APIToken: "tok", CurrentTeamID: session.NoTeam})

	result := rt.Dispatch(context.Background(), runtime.SelectTeam{TeamID: teamID})

	if result.Changed || result.Notice == nil || result.Notice.Key != runtime.KeyTeamUnavailable {
		t.Fatalf("result = %+v, want team unavailable notice", result)
	}
}

func TestSelectTeamSignedOutSendsNothing(t *testing.T) {
	t.Parallel()

	api := apitest.New(t)
	rt := newRuntime(api, session.Empty())
	result := rt.Dispatch(context.Background(), runtime.SelectTeam{TeamID: 7})
	if result.Notice == nil || result.Notice.Level != form.LevelWarning {
		t.Fatalf("result = %+v, want warning", result)
	}
	if len(api.Requests()) != 0 {
		t.Fatalf("requests = %d, want 0", len(api.Requests()))
	}
}

func TestSubmitReportsTriggeredSignals(t *testing.T) {
	t.Parallel()

	api := apitest.New(t)
	userID := api.AddUser("tok", "Ada")
	teamID := api.AddTeam("Linguists", userID)
	rt := newRuntime(api, session.Session{DisplayName: "Ada", APIToken: "tok", CurrentTeamID: teamID, CurrentTeamName: "Linguists"})

	result := rt.Dispatch(context.Background(), runtime.Submit{Kind: signal.Words, Fields: form.Fields{Text: "petrichor"}})

	if diff := cmp.Diff([]signal.Kind{signal.Words}, result.Triggered); diff != "" {
		t.Fatalf("Triggered mismatch (-want +got):\n%s", diff)
	}
	if result.Changed {
		t.Fatal("Changed = true, want false")
	}
	if result.Notice == nil || result.Notice.Key != form.KeyWordSuccess {
		t.Fatalf("notice = %+v, want word success", result.Notice)
	}

	failed := rt.Dispatch(context.Background(), runtime.Submit{Kind: signal.Words, Fields: form.Fields{Text: "petrichor"}})
	if len(failed.Triggered) != 0 || failed.Fields.Text != "petrichor" {
		t.Fatalf("duplicate result = %+v, want no trigger and kept text", failed)
	}
}

func TestTickExpiresJWTSessions(t *testing.T) {
	t.Parallel()

	token := signedToken(t, jwt.MapClaims{"name": "Grace", "exp": fixedNow.Add(time.Minute).Unix()})
	rt := newRuntime(apitest.New(t), session.Session{DisplayName: "Grace", APIToken: token, CurrentTeamID: session.NoTeam})

	live := rt.Dispatch(context.Background(), runtime.Tick{Now: fixedNow})
	if live.Changed || live.Notice != nil {
		t.Fatalf("live tick = %+v, want no change", live)
	}
	expired := rt.Dispatch(context.Background(), runtime.Tick{Now: fixedNow.Add(2 * time.Minute)})
	if !expired.Changed || expired.Notice == nil || expired.Notice.Key != runtime.KeySessionExpired {
		t.Fatalf("expired tick = %+v, want session expired notice", expired)
	}
	if rt.Session().LoggedIn() {
		t.Fatal("LoggedIn() = true after expiry")
	}
}

func TestTickKeepsOpaqueTokens(t *testing.T) {
	t.Parallel()

	rt := newRuntime(apitest.New(t), session.Session{DisplayName: "Ada", APIToken: "opaque", CurrentTeamID: session.NoTeam})
	result := rt.Dispatch(context.Background(), runtime.Tick{Now: fixedNow.Add(24 * time.Hour)})
	if result.Changed || !rt.Session().LoggedIn() {
		t.Fatalf("result = %+v, want opaque token kept", result)
	}
}

func TestLocksSerializeSameSession(t *testing.T) {
	t.Parallel()

	locks := runtime.NewLocks()
	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("browser-1")
			defer unlock()
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("max concurrent holders = %d, want 1", maxSeen)
	}
	if got := locks.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
}

func TestLocksAllowDifferentSessions(t *testing.T) {
	t.Parallel()

	locks := runtime.NewLocks()
	unlockA := locks.Lock("a")
	acquired := make(chan struct{})
	go func() {
		unlock := locks.Lock("b")
		unlock()
		close(acquired)
	}()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock for b blocked on a")
	}
	unlockA()
	unlockA()
}
