// Package webtest wires a web module environment against the in-memory
// Lingo API and a temporary session database.
package webtest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/lingo/internal/services/lingoapi/apitest"
	"github.com/louisbranch/lingo/internal/services/web/browser"
	module "github.com/louisbranch/lingo/internal/services/web/module"
	"github.com/louisbranch/lingo/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/lingo/internal/services/web/runtime"
	"github.com/louisbranch/lingo/internal/services/web/storage/sqlite"
)

// Origin is the origin of requests built by Env.
const Origin = "http://lingo.test"

// Env is one isolated web environment.
type Env struct {
	API      *apitest.Server
	Store    *sqlite.Store
	Browsers *browser.Manager
	Deps     module.Dependencies
}

// New builds an Env whose resources are released when t finishes.
func New(t testing.TB) *Env {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "lingo-web.db"))
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	api := apitest.New(t)
	client := api.Client()
	browsers, err := browser.NewManager(browser.Config{
		API:   client,
		Store: store,
		Jar:   sessioncookie.Jar{},
	})
	if err != nil {
		t.Fatalf("new browser manager: %v", err)
	}
	return &Env{
		API:      api,
		Store:    store,
		Browsers: browsers,
		Deps: module.Dependencies{
			Browsers: browsers,
			Reader:   client,
		},
	}
}

// SignIn logs token in as a fresh browser and returns its cookies.
func (e *Env) SignIn(t testing.TB, displayName, token string) []*http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	binding, release, err := e.Browsers.Bind(rr, Request(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("bind browser: %v", err)
	}
	defer release()
	if _, err := binding.Dispatch(context.Background(), runtime.Login{DisplayName: displayName, Token: token}); err != nil {
		t.Fatalf("dispatch login: %v", err)
	}
	cookies := rr.Result().Cookies()
	return append(cookies, &http.Cookie{Name: sessioncookie.TokenName, Value: token})
}

// Request builds a same-origin request. A non-nil form is sent
// url-encoded.
func Request(method, target string, form url.Values, cookies ...*http.Cookie) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, Origin+target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, Origin+target, nil)
	}
	if method != http.MethodGet && method != http.MethodHead {
		req.Header.Set("Origin", Origin)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req
}

// HTMX marks req as an htmx request.
func HTMX(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}

// Cookie returns the cookie named name set on rr, if any.
func Cookie(rr *httptest.ResponseRecorder, name string) (*http.Cookie, bool) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == name {
			return cookie, true
		}
	}
	return nil, false
}

// Follow returns cookies with any replacements set on rr applied, so a
// test can continue as the same browser.
func Follow(rr *httptest.ResponseRecorder, cookies []*http.Cookie) []*http.Cookie {
	byName := make(map[string]*http.Cookie, len(cookies))
	order := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		if _, ok := byName[cookie.Name]; !ok {
			order = append(order, cookie.Name)
		}
		byName[cookie.Name] = cookie
	}
	for _, cookie := range rr.Result().Cookies() {
		if _, ok := byName[cookie.Name]; !ok {
			order = append(order, cookie.Name)
		}
		byName[cookie.Name] = cookie
	}
	next := make([]*http.Cookie, 0, len(order))
	for _, name := range order {
		cookie := byName[name]
		if cookie.MaxAge < 0 || cookie.Value == "" {
			continue
		}
		next = append(next, &http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	return next
}
