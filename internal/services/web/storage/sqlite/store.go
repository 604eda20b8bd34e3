package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/lingo/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/louisbranch/lingo/internal/services/web/storage"
	"github.com/louisbranch/lingo/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for browser sessions.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a browser session SQLite store. The parent
// directory of path is created when missing.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	if err := ensureDir(cleanPath); err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadSession reads one browser session by id.
func (s *Store) LoadSession(ctx context.Context, id string) (webstorage.BrowserSession, bool, error) {
	if s == nil || s.sqlDB == nil {
		return webstorage.BrowserSession{}, false, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return webstorage.BrowserSession{}, false, fmt.Errorf("session id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT session_id, display_name, current_team_id, current_team_name, is_team_owner, token_fingerprint, updated_at
		 FROM browser_sessions
		 WHERE session_id = ?`,
		id,
	)

	var stored webstorage.BrowserSession
	var ownerInt int64
	var updatedAt int64
	if err := row.Scan(
		&stored.ID,
		&stored.DisplayName,
		&stored.CurrentTeamID,
		&stored.CurrentTeamName,
		&ownerInt,
		&stored.TokenFingerprint,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webstorage.BrowserSession{}, false, nil
		}
		return webstorage.BrowserSession{}, false, fmt.Errorf("load browser session: %w", err)
	}
	stored.IsTeamOwner = ownerInt != 0
	stored.UpdatedAt = unixMillisToTime(updatedAt)
	return stored, true, nil
}

// SaveSession upserts a browser session. A zero UpdatedAt is stamped with
// the current time.
func (s *Store) SaveSession(ctx context.Context, stored webstorage.BrowserSession) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	stored.ID = strings.TrimSpace(stored.ID)
	if stored.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = s.now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO browser_sessions (
		    session_id, display_name, current_team_id, current_team_name, is_team_owner, token_fingerprint, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		    display_name = excluded.display_name,
		    current_team_id = excluded.current_team_id,
		    current_team_name = excluded.current_team_name,
		    is_team_owner = excluded.is_team_owner,
		    token_fingerprint = excluded.token_fingerprint,
		    updated_at = excluded.updated_at`,
		stored.ID,
		strings.TrimSpace(stored.DisplayName),
		stored.CurrentTeamID,
		strings.TrimSpace(stored.CurrentTeamName),
		boolToInt(stored.IsTeamOwner),
		stored.TokenFingerprint,
		timeToUnixMillis(stored.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save browser session: %w", err)
	}
	return nil
}

// DeleteSession removes a browser session by id.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("session id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM browser_sessions WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete browser session: %w", err)
	}
	return nil
}

// DeleteIdleSessions removes sessions not updated since cutoff.
func (s *Store) DeleteIdleSessions(ctx context.Context, cutoff time.Time) ([]string, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`DELETE FROM browser_sessions
		 WHERE updated_at < ?
		 RETURNING session_id`,
		timeToUnixMillis(cutoff),
	)
	if err != nil {
		return nil, fmt.Errorf("delete idle browser sessions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan idle browser session: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate idle browser sessions: %w", err)
	}
	return ids, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	return nil
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ webstorage.Store = (*Store)(nil)
