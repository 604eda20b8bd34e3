// Package browser binds HTTP requests to per-browser session state.
//
// Each browser carries an opaque session id cookie. The display name and
// team context behind that id are persisted together with a fingerprint of
// the token they were resolved for; the access token itself comes from the
// request on every call and is never stored.
package browser

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/lingo/internal/services/web/form"
	"github.com/louisbranch/lingo/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/lingo/internal/services/web/runtime"
	"github.com/louisbranch/lingo/internal/services/web/session"
	"github.com/louisbranch/lingo/internal/services/web/signal"
	webstorage "github.com/louisbranch/lingo/internal/services/web/storage"
	"go.uber.org/zap"
)

// touchInterval bounds how stale UpdatedAt may get before an otherwise
// unchanged session is re-saved.
const touchInterval = 5 * time.Minute

// Config wires a Manager.
type Config struct {
	API     runtime.API
	Store   webstorage.Store
	Jar     sessioncookie.Jar
	IdleTTL time.Duration
	Logger  *zap.Logger
	Now     func() time.Time
	NewID   func() string
}

// Manager owns the in-memory state of every active browser session.
type Manager struct {
	api     runtime.API
	store   webstorage.Store
	jar     sessioncookie.Jar
	idleTTL time.Duration
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string

	locks   *runtime.Locks
	signals *signal.Registry

	mu         sync.Mutex
	forms      map[string]*form.Controller
	submitting map[submitKey]struct{}
}

type submitKey struct {
	id   string
	kind signal.Kind
}

// NewManager builds a Manager from cfg.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.API == nil {
		return nil, fmt.Errorf("api client is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	m := &Manager{
		api:     cfg.API,
		store:   cfg.Store,
		jar:     cfg.Jar,
		idleTTL: cfg.IdleTTL,
		logger:  cfg.Logger,
		now:     cfg.Now,
		newID:   cfg.NewID,
		locks:   runtime.NewLocks(),
		signals: signal.NewRegistry(),
		forms:   make(map[string]*form.Controller),

		submitting: make(map[submitKey]struct{}),
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newID == nil {
		m.newID = func() string { return uuid.NewString() }
	}
	return m, nil
}

// Jar returns the cookie jar used for session and token cookies.
func (m *Manager) Jar() sessioncookie.Jar {
	return m.jar
}

// Binding is one request's view of a browser session. It is valid until
// the release function returned with it is called.
type Binding struct {
	ID      string
	Runtime *runtime.Runtime

	manager *Manager
	dirty   bool
	// persisted reports whether the session has a stored row.
	persisted bool
}

// Bind resolves the browser session for r, creating one when the request
// has no session cookie, and holds that session's lock until release.
// Sessions that were never persisted lose their in-memory state on release.
func (m *Manager) Bind(w http.ResponseWriter, r *http.Request) (*Binding, func(), error) {
	id, ok := m.jar.SessionID(r)
	if !ok {
		id = m.newID()
		m.jar.WriteSessionID(w, r, id)
	}
	unlock := m.locks.Lock(id)
	b, err := m.open(r.Context(), id, m.jar.Token(r))
	if err != nil {
		unlock()
		return nil, func() {}, err
	}
	var once sync.Once
	release := func() {
		once.Do(func() {
			if !b.persisted {
				m.forget(id)
			}
			unlock()
		})
	}
	return b, release, nil
}

// BeginSubmit claims the submission of kind for r's browser session. It
// must be called before Bind: while a claim is held, further claims for the
// same session and kind fail. Requests without a session id always claim.
func (m *Manager) BeginSubmit(r *http.Request, kind signal.Kind) (done func(), ok bool) {
	id, found := m.jar.SessionID(r)
	if !found {
		return func() {}, true
	}
	key := submitKey{id: id, kind: kind}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.submitting[key]; busy {
		return func() {}, false
	}
	m.submitting[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.submitting, key)
			m.mu.Unlock()
		})
	}, true
}

// SignedIn reports whether r belongs to a session with an identity and a
// token. It does not create sessions.
func (m *Manager) SignedIn(r *http.Request) bool {
	id, ok := m.jar.SessionID(r)
	if !ok || m.jar.Token(r) == "" {
		return false
	}
	stored, found, err := m.store.LoadSession(r.Context(), id)
	if err != nil {
		m.logger.Warn("load browser session", zap.String("session_id", id), zap.Error(err))
		return false
	}
	return found && stored.DisplayName != ""
}

func (m *Manager) open(ctx context.Context, id, token string) (*Binding, error) {
	stored, found, err := m.store.LoadSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load browser session: %w", err)
	}
	if !found {
		stored = webstorage.BrowserSession{ID: id, CurrentTeamID: session.NoTeam}
	}

	initial := session.Session{
		DisplayName:     stored.DisplayName,
		APIToken:        token,
		CurrentTeamID:   stored.CurrentTeamID,
		CurrentTeamName: stored.CurrentTeamName,
		IsTeamOwner:     stored.IsTeamOwner,
	}
	b := &Binding{ID: id, manager: m, persisted: found}
	if initial.DisplayName != "" && (token == "" || stored.TokenFingerprint != fingerprint(token)) {
		// The token is gone or belongs to another sign-in.
		initial = session.Empty()
		b.dirty = true
	}

	sc := session.New(initial)
	sc.Subscribe(func(session.Session) { b.dirty = true })
	signals := m.signals.For(id)
	b.Runtime = runtime.New(m.api, sc, signals, runtime.Options{
		Logger: m.logger.With(zap.String("session_id", id)),
		Now:    m.now,
		Forms:  m.formsFor(id, signals),
	})
	if found && m.now().Sub(stored.UpdatedAt) > touchInterval {
		b.dirty = true
	}
	return b, nil
}

func (m *Manager) formsFor(id string, signals *signal.Signals) *form.Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	controller, ok := m.forms[id]
	if !ok {
		controller = form.NewController(m.api, signals)
		m.forms[id] = controller
	}
	return controller
}

// Session returns the current session snapshot.
func (b *Binding) Session() session.Session {
	return b.Runtime.Session().Snapshot()
}

// Dispatch applies ev and persists the session when it changed.
func (b *Binding) Dispatch(ctx context.Context, ev runtime.Event) (runtime.Result, error) {
	result := b.Runtime.Dispatch(ctx, ev)
	return result, b.Save(ctx)
}

// Save persists the session if anything changed since it was bound.
func (b *Binding) Save(ctx context.Context) error {
	if !b.dirty {
		return nil
	}
	s := b.Session()
	stored := webstorage.BrowserSession{
		ID:              b.ID,
		DisplayName:     s.DisplayName,
		CurrentTeamID:   s.CurrentTeamID,
		CurrentTeamName: s.CurrentTeamName,
		IsTeamOwner:     s.IsTeamOwner,
		UpdatedAt:       b.manager.now().UTC(),
	}
	if s.LoggedIn() {
		stored.TokenFingerprint = fingerprint(s.APIToken)
	}
	if err := b.manager.store.SaveSession(ctx, stored); err != nil {
		return fmt.Errorf("save browser session: %w", err)
	}
	b.dirty = false
	b.persisted = true
	return nil
}

// fingerprint identifies token without storing it.
func fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Sweep deletes sessions idle for longer than the configured TTL and drops
// their in-memory state. A non-positive TTL disables sweeping.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	if m.idleTTL <= 0 {
		return 0, nil
	}
	ids, err := m.store.DeleteIdleSessions(ctx, m.now().Add(-m.idleTTL))
	if err != nil {
		return 0, fmt.Errorf("sweep browser sessions: %w", err)
	}
	for _, id := range ids {
		m.forget(id)
	}
	if len(ids) > 0 {
		m.logger.Info("swept idle browser sessions", zap.Int("count", len(ids)))
	}
	return len(ids), nil
}

func (m *Manager) forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.forms, id)
	m.signals.Forget(id)
}

// Active returns how many sessions hold in-memory state.
func (m *Manager) Active() int {
	return m.signals.Len()
}
