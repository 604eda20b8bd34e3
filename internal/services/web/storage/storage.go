package storage

import (
	"context"
	"time"
)

// BrowserSession is the persisted state of one browser session.
type BrowserSession struct {
	ID              string
	DisplayName     string
	CurrentTeamID   int64
	CurrentTeamName string
	IsTeamOwner     bool
	// TokenFingerprint is a hash of the token the identity was resolved
	// for. The token itself is never stored.
	TokenFingerprint string
	UpdatedAt        time.Time
}

// Store is the persistence contract for browser sessions.
type Store interface {
	Close() error
	LoadSession(ctx context.Context, id string) (BrowserSession, bool, error)
	SaveSession(ctx context.Context, session BrowserSession) error
	DeleteSession(ctx context.Context, id string) error
	// DeleteIdleSessions removes sessions last updated before cutoff and
	// returns their ids.
	DeleteIdleSessions(ctx context.Context, cutoff time.Time) ([]string, error)
}
