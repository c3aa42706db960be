// Package session persists the single user-session record that survives
// app restarts: one serialized row under a fixed key, read once at startup
// and cleared on logout.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/auditpack/auditpack/internal/entity"
)

const fixedKey = "current"

// Store keeps the session in a local sqlite file.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		key      TEXT PRIMARY KEY,
		payload  BLOB NOT NULL,
		saved_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save serializes the session under the fixed key, replacing any previous
// record.
func (s *Store) Save(ctx context.Context, sess entity.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (key, payload, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		fixedKey, payload, time.Now().UTC())
	if err != nil {
		s.logger.Error("session.save.failed", "error", err)
		return err
	}
	return nil
}

// Load reads the persisted session. The second return value reports whether
// a record existed.
func (s *Store) Load(ctx context.Context) (entity.Session, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM sessions WHERE key = ?`, fixedKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Session{}, false, nil
	}
	if err != nil {
		return entity.Session{}, false, err
	}
	var sess entity.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		// A corrupt record is unrecoverable; treat as absent.
		s.logger.Warn("session.load.corrupt", "error", err)
		return entity.Session{}, false, nil
	}
	return sess, true, nil
}

// Clear removes the persisted session.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = ?`, fixedKey)
	if err != nil {
		s.logger.Error("session.clear.failed", "error", err)
	}
	return err
}
