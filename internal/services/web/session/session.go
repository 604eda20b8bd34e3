// Package session holds the per-browser identity and team context.
//
// A Context is owned by one browser session. Every effective change is
// pushed synchronously to subscribers, in subscription order, before the
// mutating call returns.
package session

import (
	"errors"
	"strings"
	"sync"
)

// NoTeam marks a session without a selected team.
const NoTeam int64 = -1

var (
	// ErrNoIdentity is returned when team context is set while signed out.
	ErrNoIdentity = errors.New("session has no identity")
	// ErrInvalidTeam is returned for negative team ids or blank team names.
	ErrInvalidTeam = errors.New("team id and name are required")
)

// Session is an immutable snapshot of browser session state.
type Session struct {
	DisplayName     string
	APIToken        string
	CurrentTeamID   int64
	CurrentTeamName string
	IsTeamOwner     bool
}

// Empty returns the signed-out state.
func Empty() Session {
	return Session{CurrentTeamID: NoTeam}
}

// LoggedIn reports whether an identity is present.
func (s Session) LoggedIn() bool {
	return s.DisplayName != ""
}

// HasTeam reports whether a current team is selected.
func (s Session) HasTeam() bool {
	return s.CurrentTeamID != NoTeam
}

// normalize enforces the team and identity invariants on restored state.
func (s Session) normalize() Session {
	s.DisplayName = strings.TrimSpace(s.DisplayName)
	s.CurrentTeamName = strings.TrimSpace(s.CurrentTeamName)
	if s.DisplayName == "" {
		return Empty()
	}
	if s.CurrentTeamID < 0 || s.CurrentTeamName == "" {
		s.CurrentTeamID = NoTeam
		s.CurrentTeamName = ""
		s.IsTeamOwner = false
	}
	return s
}

type subscriber struct {
	id int
	fn func(Session)
}

// Context is the mutable, observable session for one browser.
type Context struct {
	mu          sync.Mutex
	state       Session
	nextID      int
	subscribers []subscriber
}

// New returns a Context seeded with initial, normalized.
func New(initial Session) *Context {
	return &Context{state: initial.normalize()}
}

// Snapshot returns the current state.
func (c *Context) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LoggedIn reports whether an identity is present.
func (c *Context) LoggedIn() bool {
	return c.Snapshot().LoggedIn()
}

// SetIdentity records the identity reported by the identity provider. A
// blank display name signs the session out.
func (c *Context) SetIdentity(displayName, token string) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		c.ClearIdentity()
		return
	}
	c.update(func(s *Session) {
		s.DisplayName = displayName
		s.APIToken = strings.TrimSpace(token)
	})
}

// ClearIdentity signs the session out and drops any team context.
func (c *Context) ClearIdentity() {
	c.update(func(s *Session) {
		*s = Empty()
	})
}

// SetCurrentTeam selects the current team.
func (c *Context) SetCurrentTeam(id int64, name string, isOwner bool) error {
	name = strings.TrimSpace(name)
	if id < 0 || name == "" {
		return ErrInvalidTeam
	}
	var err error
	c.update(func(s *Session) {
		if !s.LoggedIn() {
			err = ErrNoIdentity
			return
		}
		s.CurrentTeamID = id
		s.CurrentTeamName = name
		s.IsTeamOwner = isOwner
	})
	return err
}

// ClearCurrentTeam drops the team context but keeps the identity.
func (c *Context) ClearCurrentTeam() {
	c.update(func(s *Session) {
		s.CurrentTeamID = NoTeam
		s.CurrentTeamName = ""
		s.IsTeamOwner = false
	})
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. fn is not called for the current state.
func (c *Context) Subscribe(fn func(Session)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, sub := range c.subscribers {
				if sub.id == id {
					c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// update applies mutate and notifies subscribers outside the lock when the
// state changed, so subscribers may read or mutate the context.
func (c *Context) update(mutate func(*Session)) {
	c.mu.Lock()
	before := c.state
	mutate(&c.state)
	after := c.state
	if before == after {
		c.mu.Unlock()
		return
	}
	subscribers := append([]subscriber(nil), c.subscribers...)
	c.mu.Unlock()

	for _, sub := range subscribers {
		sub.fn(after)
	}
}
