package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/lingo/internal/services/web/module"
	"github.com/louisbranch/lingo/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/lingo/internal/services/web/platform/sessioncookie"
)

func noContent(prefix, id string) stubModule {
	return stubModule{id: id, mount: module.Mount{Prefix: prefix, Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})}}
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{
		PublicModules: []module.Module{noContent("/one/", "one"), noContent("/one/", "two")},
	})
	if err == nil {
		t.Fatalf("expected duplicate prefix error")
	}
}

func TestComposeRejectsInvalidPublicModulePrefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "missing leading slash", prefix: "glossary/"},
		{name: "missing trailing slash", prefix: "/glossary"},
		{name: "contains surrounding whitespace", prefix: "/glossary/ "},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(ComposeInput{PublicModules: []module.Module{noContent(tc.prefix, "bad")}})
			if err == nil {
				t.Fatalf("expected invalid prefix error")
			}
			if got := err.Error(); !strings.Contains(got, "invalid prefix") || !strings.Contains(got, tc.prefix) || !strings.Contains(got, "bad") {
				t.Fatalf("unexpected error = %q", got)
			}
		})
	}
}

func TestComposeRejectsNilModules(t *testing.T) {
	t.Parallel()

	if _, err := Compose(ComposeInput{PublicModules: []module.Module{nil}}); err == nil {
		t.Fatalf("expected nil public module error")
	}
	if _, err := Compose(ComposeInput{ProtectedModules: []module.Module{nil}}); err == nil {
		t.Fatalf("expected nil protected module error")
	}
}

func TestComposeRejectsModuleMountError(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{PublicModules: []module.Module{stubModule{id: "broken", err: errBroken}}})
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("Compose() error = %v, want mount error", err)
	}
}

func TestComposeRedirectsSignedOutProtectedRequests(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		AuthRequired:     func(*http.Request) bool { return false },
		ProtectedModules: []module.Module{noContent("/fragments/", "fragments")},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	tests := []struct {
		name         string
		path         string
		htmx         bool
		wantStatus   int
		wantLocation string
		wantRedirect string
	}{
		{name: "full page", path: "/fragments/words", wantStatus: http.StatusSeeOther, wantLocation: "/"},
		{name: "slashless root", path: "/fragments", wantStatus: http.StatusSeeOther, wantLocation: "/"},
		{name: "htmx", path: "/fragments/words", htmx: true, wantStatus: http.StatusOK, wantRedirect: "/"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.htmx {
				req.Header.Set("HX-Request", "true")
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if got := rr.Header().Get("Location"); got != tc.wantLocation {
				t.Fatalf("Location = %q, want %q", got, tc.wantLocation)
			}
			if got := rr.Header().Get("HX-Redirect"); got != tc.wantRedirect {
				t.Fatalf("HX-Redirect = %q, want %q", got, tc.wantRedirect)
			}
		})
	}
}

func TestComposeServesAuthenticatedProtectedRequests(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		AuthRequired:     func(r *http.Request) bool { return r.Header.Get("X-Allow") == "yes" },
		ProtectedModules: []module.Module{noContent("/actions/", "actions")},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/actions/words", nil)
	req.Header.Set("X-Allow", "yes")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestComposeMountsPublicModulesWithoutAuth(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		AuthRequired:  func(*http.Request) bool { return false },
		PublicModules: []module.Module{noContent("/", "pages")},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/glossary", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestComposeCookieMutationOriginChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		policy     requestmeta.SchemePolicy
		target     string
		origin     string
		referer    string
		forwarded  string
		cookie     bool
		wantStatus int
	}{
		{name: "no origin proof", target: "http://lingo.test/actions/words", cookie: true, wantStatus: http.StatusForbidden},
		{name: "no session cookie", target: "http://lingo.test/actions/words", wantStatus: http.StatusNoContent},
		{name: "same origin", target: "https://lingo.test/actions/words", origin: "https://lingo.test", cookie: true, wantStatus: http.StatusNoContent},
		{name: "same origin referer", target: "https://lingo.test/actions/words", referer: "https://lingo.test/glossary", cookie: true, wantStatus: http.StatusNoContent},
		{name: "scheme differs", target: "https://lingo.test/actions/words", origin: "http://lingo.test", cookie: true, wantStatus: http.StatusForbidden},
		{name: "forwarded proto untrusted", target: "http://lingo.test/actions/words", origin: "https://lingo.test", forwarded: "https", cookie: true, wantStatus: http.StatusForbidden},
		{name: "forwarded proto trusted", policy: requestmeta.SchemePolicy{TrustForwardedProto: true}, target: "http://lingo.test/actions/words", origin: "https://lingo.test", forwarded: "https", cookie: true, wantStatus: http.StatusNoContent},
		{name: "origin omits non default port", target: "https://lingo.test:8443/actions/words", origin: "https://lingo.test", cookie: true, wantStatus: http.StatusForbidden},
		{name: "cross site", target: "https://lingo.test/actions/words", origin: "https://evil.test", cookie: true, wantStatus: http.StatusForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h, err := Compose(ComposeInput{
				AuthRequired:        func(*http.Request) bool { return true },
				RequestSchemePolicy: tc.policy,
				ProtectedModules:    []module.Module{noContent("/actions/", "actions")},
			})
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			req := httptest.NewRequest(http.MethodPost, tc.target, nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-Proto", tc.forwarded)
			}
			if tc.cookie {
				req.AddCookie(&http.Cookie{Name: sessioncookie.SessionName, Value: "sess-1"})
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
		})
	}
}

func TestComposeGuardsPublicMutations(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{PublicModules: []module.Module{noContent("/auth/", "auth")}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "http://lingo.test/auth/logout", nil)
	req.Header.Set("Origin", "https://evil.test")
	req.AddCookie(&http.Cookie{Name: sessioncookie.SessionName, Value: "sess-1"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestComposeEnforcesGroupPrefixes(t *testing.T) {
	t.Parallel()

	if _, err := Compose(ComposeInput{ProtectedModules: []module.Module{noContent("/teams/", "bad")}}); err == nil {
		t.Fatalf("expected protected module prefix policy error")
	}
	if _, err := Compose(ComposeInput{PublicModules: []module.Module{noContent("/actions/", "bad")}}); err == nil {
		t.Fatalf("expected public module prefix policy error")
	}
}

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (s stubModule) ID() string {
	return s.id
}

func (s stubModule) Mount() (module.Mount, error) {
	return s.mount, s.err
}
